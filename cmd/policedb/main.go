// Command policedb demonstrates the flyweight registry with a police car
// database: car make, model and color are shared, plates and owners are not.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/jonwraymond/flyweight/flyweight"
	"github.com/jonwraymond/flyweight/health"
	"github.com/jonwraymond/flyweight/observe"
)

// seedCars are the flyweights the database starts with.
var seedCars = []flyweight.SharedState{
	{"Chevrolet", "Camaro2018", "pink"},
	{"Mercedes Benz", "C300", "black"},
	{"Mercedes Benz", "C500", "red"},
	{"BMW", "M5", "red"},
	{"BMW", "X6", "white"},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "policedb:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	cfg, err := parseConfig(args, stderr)
	if err != nil {
		return err
	}

	obsCfg := cfg.observe(stdout)
	obs, err := observe.NewObserver(ctx, obsCfg)
	if err != nil {
		return fmt.Errorf("observer: %w", err)
	}
	defer func() {
		err = errors.Join(err, obs.Shutdown(context.WithoutCancel(ctx)))
	}()

	mw, err := observe.MiddlewareFromObserver(obs)
	if err != nil {
		return fmt.Errorf("middleware: %w", err)
	}
	if obsCfg.Logging.Enabled {
		mw = mw.WithLogger(observe.NewLoggerWithWriter(cfg.logLevel, stderr))
	}

	opts := []flyweight.Option{
		flyweight.WithName("police-cars"),
		flyweight.WithMiddleware(mw),
	}
	if cfg.digestKeys {
		opts = append(opts, flyweight.WithKeyer(flyweight.DigestKeyer{}))
	}
	reg := flyweight.New(seedCars, opts...)

	if err := reg.FormatList(stdout); err != nil {
		return err
	}

	if err := addCar(ctx, stdout, reg, "CL234IR", "James Doe", "BMW", "M5", "red"); err != nil {
		return err
	}
	if err := addCar(ctx, stdout, reg, "CL234IR", "James Doe", "BMW", "X1", "red"); err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	if err := reg.FormatList(stdout); err != nil {
		return err
	}

	checks := []health.Checker{
		health.NewCapacityChecker(reg, health.CapacityCheckerConfig{
			Name:             "police-cars",
			WarningThreshold: cfg.warnAt,
		}),
		seedsChecker(reg),
	}

	fmt.Fprintln(stdout)
	for _, check := range checks {
		if _, err := fmt.Fprintf(stdout, "health %s %s\n", check.Name(), check.Check(ctx)); err != nil {
			return err
		}
	}
	return nil
}

// seedsChecker reports unhealthy if any seed car no longer resolves to a
// flyweight. Lookup never inserts, so the check does not change the registry.
func seedsChecker(reg *flyweight.Registry) health.Checker {
	return health.NewCheckerFunc("seeds", func(ctx context.Context) health.Result {
		for _, state := range seedCars {
			if _, ok := reg.Lookup(ctx, state); !ok {
				return health.Unhealthy(fmt.Sprintf("seed %s missing", reg.KeyOf(state)), health.ErrCheckFailed)
			}
		}
		return health.Healthy(fmt.Sprintf("%d seeds present", len(seedCars)))
	})
}

// addCar records one car: the shared part goes through the registry, the
// plate and owner only through Operation.
func addCar(ctx context.Context, w io.Writer, reg *flyweight.Registry, plates, owner, brand, model, color string) error {
	if _, err := fmt.Fprintln(w, "\nClient: adding a car to the database."); err != nil {
		return err
	}
	rec := reg.GetOrCreate(ctx, flyweight.SharedState{brand, model, color})
	_, err := fmt.Fprintln(w, rec.Operation(flyweight.UniqueState{plates, owner}))
	return err
}
