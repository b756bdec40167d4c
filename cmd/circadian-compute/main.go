// circadian-compute runs one computation against the configured datasets and
// writes the result to stdout, for scripting and offline plotting.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/chrissnell/circadian/internal/engine"
	"github.com/chrissnell/circadian/internal/log"
	"github.com/chrissnell/circadian/internal/managers"
	"github.com/chrissnell/circadian/pkg/config"
	"github.com/chrissnell/circadian/pkg/responseformat"
)

func main() {
	var (
		cfgFile    = flag.String("config", "config.yaml", "Path to configuration source")
		cfgBackend = flag.String("config-backend", config.BackendYAML, "Configuration backend type: 'yaml' or 'sqlite'")
		rangeSel   = flag.String("range", "", "Time range: all, week1, week2 or day1..day14 (default from config)")
		gender     = flag.String("gender", "", "Gender filter: both, female or male (default from config)")
		phase      = flag.String("phase", "", "Phase filter: all or estrus (default from config)")
		format     = flag.String("format", responseformat.FormatJSON, "Output format: json or msgpack")
		debug      = flag.Bool("debug", false, "Turn on debugging output")
	)
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(*cfgFile, *cfgBackend, *rangeSel, *gender, *phase, *format); err != nil {
		log.Errorf("%v", err)
		if errors.Is(err, engine.ErrAllSourcesFailed) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(cfgFile, cfgBackend, rangeSel, gender, phase, format string) error {
	if format != responseformat.FormatJSON && format != responseformat.FormatMsgPack {
		return fmt.Errorf("unsupported format %q", format)
	}

	cfgData, err := config.Load(cfgFile, cfgBackend)
	if err != nil {
		return err
	}

	logger := log.GetSugaredLogger()

	sm, err := managers.NewStorageManager(cfgData, logger.Named("sources"))
	if err != nil {
		return err
	}
	defer sm.Close()

	eng, err := engine.New(sm.Store, cfgData.Analysis, logger.Named("engine"))
	if err != nil {
		return err
	}

	req, err := eng.NewRequest(rangeSel, gender, phase)
	if err != nil {
		return err
	}

	result, err := eng.Compute(context.Background(), req)
	if err != nil {
		return err
	}

	return responseformat.Encode(os.Stdout, format, result)
}
