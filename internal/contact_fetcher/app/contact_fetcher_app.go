package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"time"

	"github.com/aradsms/contact_fetcher/internal/contact_fetcher/domain"
)

// Options is the immutable request for one run, built once from the
// command line.
type Options struct {
	SortField domain.SortField
	Filter    *regexp.Regexp // nil means match everything
}

// Application runs the fetch, decode, transform and render pipeline.
type Application struct {
	source  domain.ContactSource
	decoder *Decoder
	metrics *Metrics
	logger  *slog.Logger
}

// NewApplication creates a new Application instance.
func NewApplication(
	source domain.ContactSource,
	decoder *Decoder,
	metrics *Metrics,
	logger *slog.Logger,
) *Application {
	if decoder == nil {
		decoder = NewDecoder(nil)
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Application{
		source:  source,
		decoder: decoder,
		metrics: metrics,
		logger:  logger,
	}
}

// Metrics returns the run metrics.
func (a *Application) Metrics() *Metrics {
	return a.metrics
}

// Run fetches the contacts, sorts then filters them and writes the
// rendered listing to out. On failure nothing is written to out and the
// returned error is a *domain.ExitError carrying the outcome category.
func (a *Application) Run(ctx context.Context, opts Options, out io.Writer) error {
	list, err := a.FetchContacts(ctx)
	if err != nil {
		return err
	}

	list.SortBy(opts.SortField)
	filter := opts.Filter
	if filter == nil {
		filter = domain.MatchAll
	}
	list.Filter(filter)

	a.metrics.contactsGauge.WithLabelValues("rendered").Set(float64(list.Len()))
	a.logger.InfoContext(ctx, "Rendering contacts",
		"sort", opts.SortField.Normalize(),
		"filter", filter.String(),
		"count", list.Len(),
	)

	if _, err := fmt.Fprintln(out, list.Render()); err != nil {
		return domain.ClassifyError(fmt.Errorf("failed to write output: %w", err))
	}
	return nil
}

// FetchContacts performs the fetch and decode steps.
func (a *Application) FetchContacts(ctx context.Context) (*domain.ContactList, error) {
	location := a.source.Location()

	start := time.Now()
	body, err := a.source.Fetch(ctx)
	a.metrics.fetchDurationHist.Observe(time.Since(start).Seconds())
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to fetch contacts", "url", location, "error", err)
		return nil, classifyFetchError(err)
	}

	list, err := a.decoder.Decode(body)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to decode contacts", "url", location, "error", err)
		return nil, classifyDecodeError(location, err)
	}

	a.metrics.contactsGauge.WithLabelValues("fetched").Set(float64(list.Len()))
	a.logger.InfoContext(ctx, "Contacts fetched", "url", location, "count", list.Len())
	return list, nil
}

func classifyFetchError(err error) error {
	var statusErr *domain.StatusError
	if errors.As(err, &statusErr) {
		return domain.NewExitError(domain.InvalidResponseError, statusErr.Error(), err)
	}
	return domain.ClassifyError(err)
}

func classifyDecodeError(location string, err error) error {
	switch {
	case errors.Is(err, domain.ErrMissingContactsField):
		return domain.NewExitError(domain.InvalidResponseError,
			fmt.Sprintf(`HTTP response JSON from %s does not list "contacts" field`, location), err)
	case errors.Is(err, domain.ErrUnexpectedShape):
		return domain.NewExitError(domain.InvalidResponseError,
			fmt.Sprintf("HTTP response JSON from %s has an unexpected shape: %v", location, err), err)
	case errors.Is(err, domain.ErrMalformedPayload), errors.Is(err, domain.ErrMalformedContact):
		return domain.NewExitError(domain.ResponseParseError,
			fmt.Sprintf("Failed to parse incoming payload data from: %s as JSON: %v", location, err), err)
	default:
		return domain.ClassifyError(err)
	}
}
