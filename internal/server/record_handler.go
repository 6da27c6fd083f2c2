// Package server exposes the record collections over Connect RPC.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/at-ishikawa/keepsake/internal/csvio"
	"github.com/at-ishikawa/keepsake/internal/library"
	"github.com/at-ishikawa/keepsake/internal/profile"
	"github.com/at-ishikawa/keepsake/internal/storage"
	"github.com/at-ishikawa/keepsake/internal/transfer"
)

const (
	ServiceName = "keepsake.v1.RecordService"

	ListKindsProcedure     = "/" + ServiceName + "/ListKinds"
	ExportRecordsProcedure = "/" + ServiceName + "/ExportRecords"
	ImportRecordsProcedure = "/" + ServiceName + "/ImportRecords"
)

// RecordHandler serves RecordService for every profile kept in one store.
type RecordHandler struct {
	store          storage.Store
	defaultProfile string
	options        []library.Option
	metrics        *metrics
}

func NewRecordHandler(store storage.Store, defaultProfile string, reg prometheus.Registerer, opts ...library.Option) *RecordHandler {
	return &RecordHandler{
		store:          store,
		defaultProfile: defaultProfile,
		options:        opts,
		metrics:        newMetrics(reg),
	}
}

func (h *RecordHandler) library(name string) (*library.Library, error) {
	if name == "" {
		name = h.defaultProfile
	}
	if err := profile.ValidateName(name); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return library.New(h.store, name, h.options...), nil
}

func (h *RecordHandler) kind(profileName, kindName string) (library.Kind, error) {
	lib, err := h.library(profileName)
	if err != nil {
		return nil, err
	}
	kind, err := lib.Kind(kindName)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	return kind, nil
}

// ListKinds returns every record kind with its record count.
func (h *RecordHandler) ListKinds(
	ctx context.Context,
	req *connect.Request[ListKindsRequest],
) (*connect.Response[ListKindsResponse], error) {
	lib, err := h.library(req.Msg.Profile)
	if err != nil {
		return nil, err
	}

	kinds := make([]KindSummary, 0, len(lib.Kinds()))
	for _, kind := range lib.Kinds() {
		count, err := kind.Count(ctx)
		if err != nil {
			return nil, toConnectError(fmt.Errorf("count %s: %w", kind.Name(), err))
		}
		kinds = append(kinds, KindSummary{
			Name:   kind.Name(),
			Stem:   kind.Stem(),
			Title:  kind.Title(),
			Labels: kind.Labels(),
			Count:  count,
		})
	}
	return connect.NewResponse(&ListKindsResponse{Kinds: kinds}), nil
}

// ExportRecords returns the CSV export of one kind.
func (h *RecordHandler) ExportRecords(
	ctx context.Context,
	req *connect.Request[ExportRecordsRequest],
) (*connect.Response[ExportRecordsResponse], error) {
	kind, err := h.kind(req.Msg.Profile, req.Msg.Kind)
	if err != nil {
		return nil, err
	}

	export, err := kind.Export(ctx)
	if err != nil {
		return nil, toConnectError(fmt.Errorf("export %s: %w", kind.Name(), err))
	}
	h.metrics.exported.WithLabelValues(kind.Name()).Add(float64(export.Count))

	res := connect.NewResponse(&ExportRecordsResponse{
		FileName: export.FileName,
		Content:  export.Text,
		Count:    export.Count,
	})
	res.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	return res, nil
}

// ImportRecords merges an uploaded CSV file into one kind.
func (h *RecordHandler) ImportRecords(
	ctx context.Context,
	req *connect.Request[ImportRecordsRequest],
) (*connect.Response[ImportRecordsResponse], error) {
	kind, err := h.kind(req.Msg.Profile, req.Msg.Kind)
	if err != nil {
		return nil, err
	}
	if err := transfer.CheckCSVName(req.Msg.FileName); err != nil {
		return nil, toConnectError(err)
	}

	result, err := kind.Import(ctx, req.Msg.Content, library.ImportOptions{DryRun: req.Msg.DryRun})
	if err != nil {
		return nil, toConnectError(fmt.Errorf("import %s: %w", kind.Name(), err))
	}
	if !req.Msg.DryRun {
		h.metrics.imported.WithLabelValues(kind.Name(), "added").Add(float64(result.Added))
		h.metrics.imported.WithLabelValues(kind.Name(), "skipped").Add(float64(result.Skipped))
	}
	slog.Default().Info("imported records",
		"kind", kind.Name(),
		"file", req.Msg.FileName,
		"parsed", result.Parsed,
		"added", result.Added,
		"skipped", result.Skipped,
		"dryRun", req.Msg.DryRun,
	)

	return connect.NewResponse(&ImportRecordsResponse{
		Parsed:  result.Parsed,
		Added:   result.Added,
		Skipped: result.Skipped,
	}), nil
}

func toConnectError(err error) error {
	switch {
	case errors.Is(err, library.ErrUnknownKind),
		errors.Is(err, transfer.ErrNotCSV),
		errors.Is(err, csvio.ErrNotText):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, library.ErrCorruptState):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// Routes registers RecordService procedures on mux.
func (h *RecordHandler) Routes(mux *http.ServeMux) {
	opts := []connect.HandlerOption{
		connect.WithCodec(Codec()),
		connect.WithInterceptors(h.metrics.interceptor()),
	}
	mux.Handle(ListKindsProcedure, connect.NewUnaryHandler(ListKindsProcedure, h.ListKinds, opts...))
	mux.Handle(ExportRecordsProcedure, connect.NewUnaryHandler(ExportRecordsProcedure, h.ExportRecords, opts...))
	mux.Handle(ImportRecordsProcedure, connect.NewUnaryHandler(ImportRecordsProcedure, h.ImportRecords, opts...))
}

// NewMux serves RecordService, /metrics from gatherer, and /healthz.
func NewMux(h *RecordHandler, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	h.Routes(mux)
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}
