package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
	config "github.com/sandunipw/school_manager/configs"
	"github.com/sandunipw/school_manager/database"
	"github.com/sandunipw/school_manager/models"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Helvetica, Arial, sans-serif; margin: 40px; }
  h1 { text-align: center; }
  .range { text-align: center; color: #555; margin-bottom: 30px; }
  table { width: 100%; border-collapse: collapse; }
  th, td { border: 1px solid #ccc; padding: 8px 12px; text-align: left; }
  th { background: #f0f0f0; }
  .absent { color: #c0392b; font-weight: bold; }
</style>
</head>
<body>
  <h1>Teacher Attendance Report</h1>
  <div class="range">{{.RangeStart}} &mdash; {{.RangeEnd}}</div>
  <table>
    <tr><th>Date</th><th>Teacher</th><th>Status</th></tr>
    {{range .Records}}
    <tr>
      <td>{{.Date}}</td>
      <td>{{.Teacher}}</td>
      <td {{if eq .Status "Absent"}}class="absent"{{end}}>{{.Status}}</td>
    </tr>
    {{end}}
  </table>
</body>
</html>`

// GenerateTeacherAttendanceReport renders the teacher attendance records in
// the date range to a PDF, uploads it and records the export.
func GenerateTeacherAttendanceReport(requestedBy uuid.UUID, start, end time.Time) (*models.AttendanceReport, error) {
	var records []models.TeacherAttendance
	err := database.DB.
		Preload("Teacher").
		Where("date BETWEEN ? AND ?", start, end).
		Order("date desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load attendance records: %w", err)
	}

	htmlData, err := renderReportHTML(records, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to render report HTML: %w", err)
	}

	pdfBytes, err := generatePDFFromHTML(htmlData)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	reportURL, err := uploadReportToCloudinary(pdfBytes, requestedBy.String())
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	report := models.AttendanceReport{
		RequestedBy: requestedBy,
		RangeStart:  start,
		RangeEnd:    end,
		ReportURL:   reportURL,
	}
	if err := database.DB.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to record report: %w", err)
	}
	return &report, nil
}

func renderReportHTML(records []models.TeacherAttendance, start, end time.Time) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	type row struct {
		Date    string
		Teacher string
		Status  string
	}
	rows := make([]row, 0, len(records))
	for _, r := range records {
		rows = append(rows, row{
			Date:    r.Date.Format("2006-01-02"),
			Teacher: r.Teacher.FullName,
			Status:  r.Status,
		})
	}

	data := struct {
		RangeStart string
		RangeEnd   string
		Records    []row
	}{
		RangeStart: start.Format("January 2, 2006"),
		RangeEnd:   end.Format("January 2, 2006"),
		Records:    rows,
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", err
	}
	return rendered.String(), nil
}

func generatePDFFromHTML(htmlContent string) ([]byte, error) {
	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

func uploadReportToCloudinary(fileBytes []byte, requesterID string) (string, error) {
	cld, err := cloudinary.NewFromURL(config.Config("CLOUDINARY_URL"))
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uploadParams := uploader.UploadParams{
		PublicID:     fmt.Sprintf("reports/%s_%s", requesterID, uuid.New().String()),
		Folder:       "school_manager_reports",
		ResourceType: "raw",
	}

	uploadResult, err := cld.Upload.Upload(ctx, bytes.NewReader(fileBytes), uploadParams)
	if err != nil {
		return "", err
	}

	return uploadResult.SecureURL, nil
}
