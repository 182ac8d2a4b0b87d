package corpus

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/vectara-examples/internal/cmd/base"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara"
	"github.com/hashicorp-forge/vectara-examples/pkg/vectara/schema"
)

type Command struct {
	*base.Command

	opts         base.Options
	flagStart    string
	flagEnd      string
	flagInterval time.Duration
	flagMetric   string
	flagEnable   bool

	// now is replaced in tests.
	now func() time.Time
}

func (c *Command) Synopsis() string {
	return "Read a corpus, compute its size, toggle it and fetch usage metrics"
}

func (c *Command) Help() string {
	return `Usage: vectara-examples corpus [options]

  This command reads the corpus, computes its size, updates its enablement
  and fetches its usage metrics for a time window. The window defaults to
  the last 24 hours. The run stops at the first failed step.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("corpus", flag.ContinueOnError))
	c.opts.AddFlags(f)

	f.StringVar(
		&c.flagStart, "start", "",
		"Start of the usage window, in any common date format.",
	)
	f.StringVar(
		&c.flagEnd, "end", "",
		"End of the usage window, in any common date format (default now).",
	)
	f.DurationVar(
		&c.flagInterval, "interval", time.Hour,
		"Length of each usage metric bucket.",
	)
	f.StringVar(
		&c.flagMetric, "metric", "serving",
		"Usage metric to fetch: serving or indexing.",
	)
	f.BoolVar(
		&c.flagEnable, "enable", false,
		"Enable the corpus instead of disabling it.",
	)

	return f
}

// window resolves the usage window from the flags.
func (c *Command) window() (start, end time.Time, err error) {
	now := time.Now
	if c.now != nil {
		now = c.now
	}

	end = now().UTC()
	if c.flagEnd != "" {
		if end, err = dateparse.ParseIn(c.flagEnd, time.UTC); err != nil {
			return start, end, fmt.Errorf("invalid end %q: %w", c.flagEnd, err)
		}
	}
	start = end.Add(-24 * time.Hour)
	if c.flagStart != "" {
		if start, err = dateparse.ParseIn(c.flagStart, time.UTC); err != nil {
			return start, end, fmt.Errorf("invalid start %q: %w", c.flagStart, err)
		}
	}
	if !start.Before(end) {
		return start, end, fmt.Errorf("start %s must be before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return start, end, nil
}

func (c *Command) Run(args []string) int {
	s := c.Setup(c.Flags(), &c.opts, args)
	if s == nil {
		return 1
	}
	defer s.Close()

	corpusID := s.Config.CorpusID
	if corpusID == 0 {
		c.UI.Error("corpus-id is required")
		return 1
	}
	var (
		result *multierror.Error
		metric string
	)
	switch c.flagMetric {
	case "serving":
		metric = schema.MetricTypeServing
	case "indexing":
		metric = schema.MetricTypeIndexing
	default:
		result = multierror.Append(result,
			fmt.Errorf("invalid metric %q: must be serving or indexing", c.flagMetric))
	}
	if c.flagInterval <= 0 {
		result = multierror.Append(result, errors.New("interval must be positive"))
	}
	start, end, err := c.window()
	if err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx, cancel := c.Context()
	defer cancel()

	cred, err := s.Credential(ctx, false)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	w := s.Workflow(cred)

	out, ok := w.REST(ctx, "read corpus", vectara.ReadCorpus, schema.ReadCorpusRequest{
		CorpusID:      []int64{corpusID},
		ReadBasicInfo: true,
		ReadSize:      true,
		ReadAPIKeys:   true,
	})
	if info, ok := base.Result[schema.ReadCorpusResponse](w, "read corpus", out, ok); ok {
		w.Print("read corpus", info.Corpora[0])
	}

	out, ok = w.REST(ctx, "compute corpus size", vectara.ComputeCorpusSize,
		schema.ComputeCorpusSizeRequest{CorpusID: corpusID})
	if size, ok := base.Result[schema.ComputeCorpusSizeResponse](w, "compute corpus size", out, ok); ok {
		w.Print("compute corpus size", size.Size)
	}

	step := "disable corpus"
	if c.flagEnable {
		step = "enable corpus"
	}
	w.REST(ctx, step, vectara.UpdateCorpusEnablement, schema.UpdateCorpusEnablementRequest{
		CorpusID: corpusID,
		Enable:   c.flagEnable,
	})

	out, ok = w.REST(ctx, "get usage metrics", vectara.GetUsageMetrics, schema.GetUsageMetricsRequest{
		CorpusID: corpusID,
		Window: schema.MetricWindow{
			AbsoluteWindow: schema.AbsoluteWindow{Start: start, End: end},
		},
		Type:     metric,
		Interval: schema.FormatInterval(c.flagInterval),
	})
	if usage, ok := base.Result[schema.GetUsageMetricsResponse](w, "get usage metrics", out, ok); ok {
		w.Print("get usage metrics", usage.Values)
	}

	return w.ExitCode()
}
