package labels

import (
	"context"
	"image"
	"sync"

	ulid "github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"grocy-label-server/internal/platform/config"
)

// Driver opens printer sessions. The concrete ESC/POS network implementation
// lives in platform/escpos; tests substitute a fake.
type Driver interface {
	Open(host string, port int) (Connection, error)
}

// Connection is one open printer session.
type Connection interface {
	SendImage(img image.Image) error
	SendText(s string) error
	Close() error
}

// Trailing feed after the label so it clears the cutter.
const trailingFeed = "\n\n\n\n"

type Service struct {
	log      *zap.Logger
	printer  config.PrinterConfig
	layouter *Layouter
	renderer *Renderer
	driver   Driver
	store    *Store // nil: print history disabled

	// Serializes physical transmissions; the printer has a single buffer
	// and gin runs handlers concurrently.
	printMu sync.Mutex
}

func NewService(log *zap.Logger, cfg *config.Config, driver Driver, store *Store) (*Service, error) {
	fonts, err := loadFonts()
	if err != nil {
		return nil, err
	}
	return &Service{
		log:      log,
		printer:  cfg.Printer,
		layouter: newLayouter(cfg.Label, fonts),
		renderer: newRenderer(fonts),
		driver:   driver,
		store:    store,
	}, nil
}

func (s *Service) PrinterAddr() string { return s.printer.Addr() }

// Print renders the label and transmits it to the printer. Every attempt
// gets a job id and, when history is enabled, a history row; failures are
// logged and returned, never propagated as panics.
func (s *Service) Print(ctx context.Context, data LabelData) error {
	jobID := ulid.Make().String()
	log := s.log.With(
		zap.String("job_id", jobID),
		zap.String("product", data.Name),
		zap.String("printer", s.printer.Addr()),
	)

	err := s.transmit(data)
	if err != nil {
		log.Error("print failed", zap.Error(err))
	} else {
		log.Info("label printed")
	}

	s.record(ctx, jobID, data, err)
	return err
}

func (s *Service) transmit(data LabelData) error {
	s.printMu.Lock()
	defer s.printMu.Unlock()

	conn, err := s.driver.Open(s.printer.Host, s.printer.Port)
	if err != nil {
		return ErrUnavailable("printer connection failed: " + err.Error())
	}
	// Teardown on every exit path; the handle is scoped to this call, so
	// each print is independent of the last.
	defer conn.Close()

	plan := s.layouter.Layout(data)
	img, err := s.renderer.Render(plan)
	if err != nil {
		return ErrInternal("label render failed: " + err.Error())
	}

	if err := conn.SendImage(img); err != nil {
		return ErrUnavailable("image transfer failed: " + err.Error())
	}
	if err := conn.SendText(trailingFeed); err != nil {
		return ErrUnavailable("trailing feed failed: " + err.Error())
	}
	return nil
}

// Preview renders the label to PNG without touching the printer.
func (s *Service) Preview(data LabelData) ([]byte, error) {
	return s.renderer.RenderPNG(s.layouter.Layout(data))
}

// record writes the history row. Best effort: a failed insert is logged and
// never changes the print outcome.
func (s *Service) record(ctx context.Context, jobID string, data LabelData, printErr error) {
	if s.store == nil {
		return
	}
	job := PrintJob{
		JobID:       jobID,
		ProductName: data.Name,
		Barcode:     data.Barcode,
		Success:     printErr == nil,
	}
	if printErr != nil {
		job.ErrorMessage = printErr.Error()
	}
	if err := s.store.Insert(ctx, job); err != nil {
		s.log.Warn("print history insert failed", zap.String("job_id", jobID), zap.Error(err))
	}
}

// History returns the most recent print attempts, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]PrintJob, error) {
	if s.store == nil {
		return nil, ErrUnavailable("print history disabled")
	}
	return s.store.ListRecent(ctx, limit)
}
