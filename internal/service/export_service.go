package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/coursepulse/coursepulse-api/internal/analytics"
	appErrors "github.com/coursepulse/coursepulse-api/pkg/errors"
	"github.com/coursepulse/coursepulse-api/pkg/export"
)

// ExportFormat enumerates the supported download formats.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportResult bundles the rendered bytes with response metadata.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders an instructor's per-course breakdown into a
// downloadable file.
type ExportService struct {
	courses ReportCourseRepository
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(courses ReportCourseRepository, csv *export.CSVExporter, pdf *export.PDFExporter, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{courses: courses, csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// CourseBreakdown renders the instructor's course stats in the requested
// format.
func (s *ExportService) CourseBreakdown(ctx context.Context, instructorID string, format ExportFormat) (*ExportResult, error) {
	courses, err := s.courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "load instructor courses")
	}

	dataset := breakdownDataset(analytics.CourseStats(courses))
	stamp := s.now().UTC().Format("20060102")

	switch format {
	case ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("course-breakdown-%s.csv", stamp),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	case ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Course Breakdown")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf export")
		}
		return &ExportResult{
			FileName:    fmt.Sprintf("course-breakdown-%s.pdf", stamp),
			ContentType: "application/pdf",
			Data:        data,
		}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
}

func breakdownDataset(stats []analytics.CourseStat) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Course", "Status", "Students", "Revenue", "Avg Rating", "Completion %"},
	}
	for _, stat := range stats {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course":       stat.Title,
			"Status":       string(stat.Status),
			"Students":     strconv.Itoa(stat.Students),
			"Revenue":      strconv.FormatFloat(stat.Revenue, 'f', 2, 64),
			"Avg Rating":   strconv.FormatFloat(stat.AverageRating, 'f', 2, 64),
			"Completion %": strconv.FormatFloat(stat.CompletionRate, 'f', 2, 64),
		})
	}
	return dataset
}
