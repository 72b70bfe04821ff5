package main

import (
	"os"

	"github.com/woozymasta/coordsuite/internal/config"
	"github.com/woozymasta/coordsuite/internal/converter"
	"github.com/woozymasta/coordsuite/internal/export"
	"github.com/woozymasta/coordsuite/internal/logger"
	"github.com/woozymasta/coordsuite/internal/textio"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// exit code when --strict is set and a line failed
const exitLineErrors = 2

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to configuration file, ignored when missing" default:"config.yaml"`
	Input      string `short:"i" long:"in"     description:"Input file path. Reads from stdin if empty or -"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Export format; prints a table when empty" choice:"utm-csv" choice:"latlon-csv" choice:"kml" choice:"geojson" choice:"text-utm" choice:"text-latlon" choice:"json" choice:"yaml" choice:"webp"`

	Direction    string `short:"d" long:"direction"     env:"DIRECTION"  description:"Conversion direction" choice:"auto" choice:"utm-to-geo" choice:"geo-to-utm"`
	Zone         int    `short:"z" long:"zone"          env:"UTM_ZONE"   description:"Fixed UTM zone (1-60)"`
	Hemisphere   string `short:"H" long:"hemisphere"    env:"HEMISPHERE" description:"Fixed hemisphere (N or S)"`
	Ellipsoid    string `short:"e" long:"ellipsoid"     env:"ELLIPSOID"  description:"Reference ellipsoid (WGS84, GRS80, International1924)"`
	Delimiter    string `long:"delimiter"               description:"CSV and text column delimiter (tab, comma, semicolon, space or one character)"`
	SpecialZones bool   `short:"s" long:"special-zones" description:"Apply the Norway and Svalbard zone exceptions"`
	Compact      bool   `long:"compact"                 description:"Minify KML, GeoJSON and JSON output"`
	Strict       bool   `long:"strict"                  description:"Exit with code 2 when any line fails"`
}

func main() {
	// .env only feeds env tags, a missing file is fine
	envErr := godotenv.Load()

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()
	if envErr != nil {
		log.Trace().Err(envErr).Msg("No .env file loaded")
	}

	cfg, err := config.LoadOptional(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	applyFlags(cfg, &opts)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid options")
	}

	convOpts, err := cfg.ConvertOptions()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid conversion options")
	}
	proj, err := cfg.Projection()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid ellipsoid")
	}

	text, encoding, err := textio.Read(opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}
	log.Debug().Str("encoding", encoding).Int("bytes", len(text)).Msg("Input decoded")

	res, err := converter.New(proj).Convert(text, convOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}

	for _, f := range res.Failures() {
		log.Warn().
			Int("line", f.Line).
			Str("kind", f.Kind.String()).
			Str("text", f.Text).
			Msg(f.Message)
	}

	if err := writeOutput(res, cfg, &opts); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output")
	}

	log.Info().
		Str("detection", res.Detection.String()).
		Str("direction", res.Direction.String()).
		Str("ellipsoid", proj.Ellipsoid().Name).
		Int("converted", len(res.Records())).
		Int("failed", len(res.Failures())).
		Msg("Conversion done")

	if opts.Strict && len(res.Failures()) > 0 {
		os.Exit(exitLineErrors)
	}
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, opts *Options) {
	if opts.Direction != "" {
		cfg.Convert.Direction = opts.Direction
	}
	if opts.Zone != 0 || opts.Hemisphere != "" {
		cfg.Convert.Zone = opts.Zone
		cfg.Convert.Hemisphere = opts.Hemisphere
	}
	if opts.Ellipsoid != "" {
		cfg.Convert.Ellipsoid = opts.Ellipsoid
	}
	if opts.SpecialZones {
		cfg.Convert.SpecialZones = true
	}
	if opts.Delimiter != "" {
		cfg.Export.Delimiter = opts.Delimiter
	}
	if opts.Compact {
		cfg.Export.Compact = true
	}
}

func writeOutput(res *converter.Result, cfg *config.Config, opts *Options) error {
	if opts.Format == "" {
		if opts.Output == "" {
			renderTable(os.Stdout, res, cfg.ExportOptions())
			return nil
		}
		opts.Format = string(export.FormatUTMCSV)
		if res.Direction == converter.ForceUtmToGeo {
			opts.Format = string(export.FormatLatLonCSV)
		}
	}

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	if opts.Output == "" {
		return export.Write(os.Stdout, format, res, cfg.ExportOptions())
	}

	if err := export.WriteFile(opts.Output, format, res, cfg.ExportOptions()); err != nil {
		return err
	}
	log.Info().Str("path", opts.Output).Str("format", string(format)).Msg("Export written")
	return nil
}
