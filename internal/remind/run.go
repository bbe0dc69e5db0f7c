package remind

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ValidateSpec reports whether spec is an accepted cron expression.
func ValidateSpec(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid remind spec %q: %w", spec, err)
	}
	return nil
}

// Run calls job once immediately and then on every tick of spec until ctx
// is cancelled. Runs never overlap; a tick arriving while job is still
// running is skipped.
func Run(ctx context.Context, spec string, log zerolog.Logger, job func(context.Context)) error {
	if err := ValidateSpec(spec); err != nil {
		return err
	}

	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
	)
	if _, err := c.AddFunc(spec, func() { job(ctx) }); err != nil {
		return err
	}

	job(ctx)

	c.Start()
	log.Debug().Str("spec", spec).Msg("reminder schedule started")

	<-ctx.Done()
	<-c.Stop().Done()
	log.Debug().Msg("reminder schedule stopped")
	return nil
}
