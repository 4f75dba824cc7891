package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/SAP-F-2025/onlinecourse-service/internal/models"
	"github.com/SAP-F-2025/onlinecourse-service/internal/repositories"
	"github.com/SAP-F-2025/onlinecourse-service/internal/validator"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	courseSheet    = "Course"
	lessonsSheet   = "Lessons"
	questionsSheet = "Questions"
	resultSheet    = "Result"
	pubDateLayout  = "2006-01-02"
)

type importExportService struct {
	repo      repositories.Repository
	exam      ExamService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewImportExportService(repo repositories.Repository, exam ExamService, logger *slog.Logger, validator *validator.Validator) ImportExportService {
	return &importExportService{
		repo:      repo,
		exam:      exam,
		logger:    logger,
		validator: validator,
	}
}

// ===== IMPORT OPERATIONS =====

// courseDocument is the YAML layout of an importable course
type courseDocument struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"image_url"`
	PubDate     string `yaml:"pub_date"`
	Lessons     []struct {
		Order   int    `yaml:"order"`
		Title   string `yaml:"title"`
		Content string `yaml:"content"`
	} `yaml:"lessons"`
	Questions []struct {
		Text    string `yaml:"question_text"`
		Grade   int    `yaml:"grade"`
		Choices []struct {
			Text      string `yaml:"choice_text"`
			IsCorrect bool   `yaml:"is_correct"`
		} `yaml:"choices"`
	} `yaml:"questions"`
}

func (s *importExportService) ImportCourseFromFile(ctx context.Context, reader io.Reader, filename string) (*models.Course, error) {
	s.logger.Info("Starting course import", "filename", filename)

	var (
		course *models.Course
		err    error
	)

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		course, err = s.parseCourseWorkbook(reader)
	case ".yaml", ".yml":
		course, err = s.parseCourseYAML(reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}

	if err := s.validateCourse(course); err != nil {
		return nil, err
	}

	err = s.repo.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.repo.Course().Create(ctx, tx, course)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save imported course: %w", err)
	}

	s.logger.Info("Course import completed",
		"course_id", course.ID,
		"lessons", len(course.Lessons),
		"questions", len(course.Questions))

	return course, nil
}

func (s *importExportService) validateCourse(course *models.Course) error {
	if err := s.validator.Validate(course); err != nil {
		return err
	}
	if len(course.Questions) == 0 {
		return NewValidationError("questions", "course must have at least 1 question", nil)
	}
	return s.validator.Question().ValidateBatch(course.Questions)
}

func (s *importExportService) parseCourseYAML(reader io.Reader) (*models.Course, error) {
	var doc courseDocument
	if err := yaml.NewDecoder(reader).Decode(&doc); err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("invalid YAML: %v", err), nil)
	}

	course, err := newCourse(doc.Name, doc.Description, doc.ImageURL, doc.PubDate)
	if err != nil {
		return nil, err
	}

	for _, l := range doc.Lessons {
		course.Lessons = append(course.Lessons, models.Lesson{
			Order:   l.Order,
			Title:   l.Title,
			Content: l.Content,
		})
	}

	for _, q := range doc.Questions {
		question := models.Question{Text: q.Text, Grade: q.Grade}
		for _, c := range q.Choices {
			question.Choices = append(question.Choices, models.Choice{
				Text:      c.Text,
				IsCorrect: c.IsCorrect,
			})
		}
		course.Questions = append(course.Questions, question)
	}

	return course, nil
}

func (s *importExportService) parseCourseWorkbook(reader io.Reader) (*models.Course, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("failed to open Excel file: %v", err), nil)
	}
	defer f.Close()

	courseRows, err := f.GetRows(courseSheet)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("missing %q sheet", courseSheet), nil)
	}
	if len(courseRows) < 2 {
		return nil, NewValidationError(courseSheet, "must have header row and one data row", len(courseRows))
	}

	header := headerIndex(courseRows[0])
	row := courseRows[1]
	course, err := newCourse(
		cellValue(row, header, "name"),
		cellValue(row, header, "description"),
		cellValue(row, header, "image_url"),
		cellValue(row, header, "pub_date"),
	)
	if err != nil {
		return nil, err
	}

	// The lessons sheet is optional
	if lessonRows, err := f.GetRows(lessonsSheet); err == nil && len(lessonRows) > 1 {
		lessons, err := parseLessonRows(lessonRows)
		if err != nil {
			return nil, err
		}
		course.Lessons = lessons
	}

	questionRows, err := f.GetRows(questionsSheet)
	if err != nil {
		return nil, NewValidationError("file", fmt.Sprintf("missing %q sheet", questionsSheet), nil)
	}
	questions, err := parseQuestionRows(questionRows)
	if err != nil {
		return nil, err
	}
	course.Questions = questions

	return course, nil
}

func parseLessonRows(rows [][]string) ([]models.Lesson, error) {
	header := headerIndex(rows[0])
	var lessons []models.Lesson
	for i, row := range rows[1:] {
		title := cellValue(row, header, "title")
		if title == "" {
			continue
		}
		lesson := models.Lesson{Title: title, Content: cellValue(row, header, "content")}
		if raw := cellValue(row, header, "order"); raw != "" {
			order, err := strconv.Atoi(raw)
			if err != nil {
				return nil, NewValidationError(fmt.Sprintf("%s!A%d", lessonsSheet, i+2), "order must be an integer", raw)
			}
			lesson.Order = order
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

// parseQuestionRows reads one choice per row. A row whose question columns are
// blank, or repeat the previous question, adds a choice to that question.
func parseQuestionRows(rows [][]string) ([]models.Question, error) {
	if len(rows) < 2 {
		return nil, NewValidationError(questionsSheet, "must have header row and at least one data row", len(rows))
	}

	header := headerIndex(rows[0])
	for _, col := range []string{"question_text", "grade", "choice_text", "is_correct"} {
		if _, ok := header[col]; !ok {
			return nil, NewValidationError("headers", fmt.Sprintf("missing required column: %s", col), col)
		}
	}

	var (
		questions []models.Question
		errs      ValidationErrors
	)
	for i, row := range rows[1:] {
		rowNum := i + 2
		text := cellValue(row, header, "question_text")
		rawGrade := cellValue(row, header, "grade")
		choiceText := cellValue(row, header, "choice_text")
		if text == "" && rawGrade == "" && choiceText == "" {
			continue
		}

		continues := len(questions) > 0 &&
			(text == "" || text == questions[len(questions)-1].Text)
		if !continues {
			if text == "" {
				errs = append(errs, *NewValidationError(fmt.Sprintf("row %d", rowNum), "question_text is required", nil))
				continue
			}
			grade, err := strconv.Atoi(rawGrade)
			if err != nil {
				errs = append(errs, *NewValidationError(fmt.Sprintf("row %d", rowNum), "grade must be an integer", rawGrade))
				continue
			}
			questions = append(questions, models.Question{Text: text, Grade: grade})
		}

		if choiceText == "" {
			continue
		}
		isCorrect, err := parseBoolCell(cellValue(row, header, "is_correct"))
		if err != nil {
			errs = append(errs, *NewValidationError(fmt.Sprintf("row %d", rowNum), "is_correct must be true or false", cellValue(row, header, "is_correct")))
			continue
		}
		current := &questions[len(questions)-1]
		current.Choices = append(current.Choices, models.Choice{Text: choiceText, IsCorrect: isCorrect})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return questions, nil
}

func newCourse(name, description, imageURL, pubDate string) (*models.Course, error) {
	course := &models.Course{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if imageURL = strings.TrimSpace(imageURL); imageURL != "" {
		course.ImageURL = &imageURL
	}
	if pubDate = strings.TrimSpace(pubDate); pubDate != "" {
		t, err := time.Parse(pubDateLayout, pubDate)
		if err != nil {
			return nil, NewValidationError("pub_date", "must be a date in YYYY-MM-DD format", pubDate)
		}
		d := datatypes.Date(t)
		course.PubDate = &d
	}
	return course, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return index
}

func cellValue(row []string, header map[string]int, column string) string {
	i, ok := header[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseBoolCell(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "", "0", "false", "f", "no", "n":
		return false, nil
	case "1", "true", "t", "yes", "y", "x":
		return true, nil
	}
	return false, fmt.Errorf("invalid boolean %q", raw)
}

// ===== EXPORT OPERATIONS =====

func (s *importExportService) ExportResultToExcel(ctx context.Context, viewer *models.User, courseID, submissionID uint) ([]byte, error) {
	result, err := s.exam.GetResult(ctx, viewer, courseID, submissionID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultSheet); err != nil {
		return nil, fmt.Errorf("failed to create Excel sheet: %w", err)
	}

	headers := []string{"Question", "Grade", "Selected", "Correct", "Passed"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(resultSheet, cell, header)
	}

	choiceText := make(map[uint]string)
	for _, q := range result.Course.Questions {
		for _, c := range q.Choices {
			choiceText[c.ID] = c.Text
		}
	}
	joinChoices := func(ids []uint) string {
		texts := make([]string, 0, len(ids))
		for _, id := range ids {
			texts = append(texts, choiceText[id])
		}
		return strings.Join(texts, "; ")
	}

	for i, q := range result.Questions {
		row := []interface{}{q.Text, q.Grade, joinChoices(q.SelectedChoiceIDs), joinChoices(q.CorrectChoiceIDs), q.Passed}
		for col, value := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(resultSheet, cell, value)
		}
	}

	totalRow := len(result.Questions) + 2
	f.SetCellValue(resultSheet, fmt.Sprintf("A%d", totalRow), "Total")
	f.SetCellValue(resultSheet, fmt.Sprintf("B%d", totalRow), fmt.Sprintf("%d / %d", result.TotalScore, result.PossibleScore))
	f.SetCellValue(resultSheet, fmt.Sprintf("E%d", totalRow), result.Passed)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}

	s.logger.Info("Exported exam result", "course_id", courseID, "submission_id", submissionID)
	return buf.Bytes(), nil
}
