package dashboard

import (
	"context"
	"errors"
	"fmt"

	"log/slog"

	v "github.com/asaskevich/govalidator"
	"github.com/avelora/salesboard/internal/dto"
	"github.com/avelora/salesboard/internal/entity"
	"github.com/google/uuid"
)

// ErrInvalidRequest marks failures the caller can fix; the transport maps it
// to a 400.
var ErrInvalidRequest = errors.New("invalid report request")

// ReportRunner computes one report per call.
type ReportRunner interface {
	RunReport(ctx context.Context, q entity.ReportQuery) (*entity.Report, error)
}

// Server implements handlers for the reporting dashboard.
type Server struct {
	engine ReportRunner
}

// New creates a new server with dashboard handlers.
func New(engine ReportRunner) *Server {
	return &Server{
		engine: engine,
	}
}

// GetReport validates the request, runs the engine for the authenticated
// requester and converts the result for the wire.
func (s *Server) GetReport(ctx context.Context, req *dto.ReportRequest, requester entity.Requester) (*dto.Report, error) {
	reportID := uuid.New().String()

	if _, err := v.ValidateStruct(req); err != nil {
		slog.Default().ErrorContext(ctx, "report request validation failed",
			slog.String("err", err.Error()),
			slog.String("reportId", reportID),
		)
		return nil, fmt.Errorf("%w: validation failed: %s", ErrInvalidRequest, err.Error())
	}

	q, err := req.ToQuery(requester)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't build report query",
			slog.String("err", err.Error()),
			slog.String("reportId", reportID),
		)
		return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, err.Error())
	}

	rep, err := s.engine.RunReport(ctx, q)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't run report",
			slog.String("err", err.Error()),
			slog.String("reportId", reportID),
		)
		return nil, fmt.Errorf("can't run report: %w", err)
	}

	slog.Default().InfoContext(ctx, "report served",
		slog.String("reportId", reportID),
		slog.String("requester", requester.Email),
		slog.Int("rows", len(rep.Rows)),
	)

	return dto.ConvertEntityReport(rep), nil
}
