package service

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Amrtamer711/ironforge-sub001/internal/models"
	"github.com/Amrtamer711/ironforge-sub001/pkg/dates"
	appErrors "github.com/Amrtamer711/ironforge-sub001/pkg/errors"
	"github.com/Amrtamer711/ironforge-sub001/pkg/export"
	"github.com/Amrtamer711/ironforge-sub001/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures a successfully stored plan export.
type ExportResult struct {
	RelativePath string
	Token        string
	URL          string
	Format       string
	ContentType  string
	ExpiresAt    time.Time
}

// ExportService renders schedule plans into tabular documents and keeps
// the rendered files on disk behind signed download tokens.
type ExportService struct {
	storage fileStorage
	csv     csvRenderer
	pdf     pdfRenderer
	signer  *storage.SignedURLSigner
	logger  *zap.Logger
	cfg     ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(store fileStorage, signer *storage.SignedURLSigner, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		storage: store,
		csv:     csv,
		pdf:     pdf,
		signer:  signer,
		logger:  logger,
		cfg:     cfg,
	}
}

var planExportHeaders = []string{"Week", "Date", "Area", "Time Blocks", "Campaigns", "Task IDs"}

// Generate renders the plan in the requested format, stores the file and
// returns a signed download reference. Supported formats are csv and pdf.
func (s *ExportService) Generate(runID string, plan models.SchedulePlan, format string) (*ExportResult, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}

	dataset := buildPlanDataset(plan)

	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case "pdf":
		payload, err = s.pdf.Render(dataset, "Shoot Schedule")
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render schedule export")
	}

	filename := fmt.Sprintf("schedule_%s_%s.%s", sanitizeFilename(runID), time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store schedule export")
	}

	token, expiresAt, err := s.signer.Generate(runID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export download")
	}

	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}

	return &ExportResult{
		RelativePath: relPath,
		Token:        token,
		URL:          fmt.Sprintf("%s/schedule/export/%s", prefix, token),
		Format:       format,
		ContentType:  contentType,
		ExpiresAt:    expiresAt,
	}, nil
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (runID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file.
func (s *ExportService) Open(relPath string) (*os.File, error) {
	return s.storage.Open(relPath)
}

// Delete removes a stored export file.
func (s *ExportService) Delete(relPath string) error {
	return s.storage.Delete(relPath)
}

// Cleanup removes files older than ttl (defaults to configured ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	return s.storage.CleanupOlderThan(ttl)
}

func buildPlanDataset(plan models.SchedulePlan) export.Dataset {
	weeks := make([]string, 0, len(plan))
	for week := range plan {
		weeks = append(weeks, week)
	}
	sort.Strings(weeks)

	rows := make([]map[string]string, 0)
	for _, week := range weeks {
		days := append([]*models.ShootDay(nil), plan.Week(week)...)
		sort.Slice(days, func(i, j int) bool {
			if days[i].Date.Equal(days[j].Date) {
				return days[i].Area < days[j].Area
			}
			return days[i].Date.Before(days[j].Date)
		})
		for _, day := range days {
			blocks := make([]string, 0, len(day.TimeBlocks))
			for _, block := range day.TimeBlocks {
				blocks = append(blocks, string(block))
			}
			rows = append(rows, map[string]string{
				"Week":        week,
				"Date":        dates.Format(day.Date),
				"Area":        string(day.Area),
				"Time Blocks": strings.Join(blocks, ", "),
				"Campaigns":   strconv.Itoa(len(day.TaskIDs)),
				"Task IDs":    strings.Join(day.TaskIDs, ", "),
			})
		}
	}

	return export.Dataset{Headers: planExportHeaders, Rows: rows}
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "__", "_")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
