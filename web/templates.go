package web

import (
	"embed"
	"html/template"
	"time"

	"gorm.io/datatypes"
)

//go:embed templates/*.html
var templateFS embed.FS

// FuncMap holds the helpers available to every page
var FuncMap = template.FuncMap{
	"pubdate": formatPubDate,
	"add":     func(a, b int) int { return a + b },
}

// LoadTemplates parses every embedded page. Each page is addressed by its
// file name, e.g. "course_list.html".
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
}

func formatPubDate(d *datatypes.Date) string {
	if d == nil {
		return ""
	}
	return time.Time(*d).Format("Jan 2, 2006")
}
