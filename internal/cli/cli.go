package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ndexcontent/tcgaloader/pkg/anomaly"
	"github.com/ndexcontent/tcgaloader/pkg/buildinfo"
	"github.com/ndexcontent/tcgaloader/pkg/cache"
	"github.com/ndexcontent/tcgaloader/pkg/config"
	"github.com/ndexcontent/tcgaloader/pkg/loadplan"
	"github.com/ndexcontent/tcgaloader/pkg/network"
	"github.com/ndexcontent/tcgaloader/pkg/pipeline"
	"github.com/ndexcontent/tcgaloader/pkg/storage"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	profile string // --profile
	conf    string // --conf
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "tcgaloader turns TCGA pathway files into validated network tables",
		Long: `tcgaloader reads PathwayMapper/TCGA pathway files, flattens nested
containers, joins edges with their nodes, names unnamed containers and
writes one network table per file plus data-quality reports.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.profile, "profile", "", "profile in the configuration file (default \""+config.DefaultProfile+"\")")
	root.PersistentFlags().StringVar(&c.conf, "conf", "", "configuration file (default $XDG_CONFIG_HOME/"+appName+"/"+config.FileName+")")

	// Register all subcommands
	root.AddCommand(c.loadCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings - Profile plus Flags
// =============================================================================

// settings is the profile selected by --profile with explicitly set flags
// applied on top.
type settings struct {
	config.Profile
	profileName string
	noCache     bool
}

// profileFlags are the per-command overrides of profile values.
type profileFlags struct {
	dataDir     string
	loadPlan    string
	networkList string
	reportDir   string
	outDir      string
	include     []string
	exclude     []string
	redisAddr   string
	mongoURI    string
	mongoDB     string
	noCache     bool
}

func (f *profileFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.dataDir, "datadir", "", "directory containing the pathway files")
	fs.StringVar(&f.loadPlan, "loadplan", "", "load plan JSON file")
	fs.StringVar(&f.networkList, "networklistfile", "", "file listing the pathway files to process")
	fs.StringVar(&f.reportDir, "reportdir", "", "directory for the invalid-name and nested-node reports")
	fs.StringVar(&f.outDir, "outdir", "", "directory for the network tables")
	fs.StringSliceVar(&f.include, "include", nil, "only process files matching these globs")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "skip files matching these globs")
	fs.StringVar(&f.redisAddr, "redis", "", "redis address or URL for a shared cache")
	fs.StringVar(&f.mongoURI, "mongo-uri", "", "MongoDB URI to store networks in")
	fs.StringVar(&f.mongoDB, "mongo-db", "", "MongoDB database (default \""+storage.DefaultMongoDatabase+"\")")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
}

// apply copies every flag the user set onto p.
func (f *profileFlags) apply(cmd *cobra.Command, p *config.Profile) {
	set := cmd.Flags().Changed
	strs := []struct {
		flag string
		src  string
		dst  *string
	}{
		{"datadir", f.dataDir, &p.DataDir},
		{"loadplan", f.loadPlan, &p.LoadPlan},
		{"networklistfile", f.networkList, &p.NetworkList},
		{"reportdir", f.reportDir, &p.ReportDir},
		{"outdir", f.outDir, &p.OutDir},
		{"redis", f.redisAddr, &p.RedisAddr},
		{"mongo-uri", f.mongoURI, &p.MongoURI},
		{"mongo-db", f.mongoDB, &p.MongoDB},
	}
	for _, s := range strs {
		if set(s.flag) {
			*s.dst = s.src
		}
	}
	if set("include") {
		p.Include = f.include
	}
	if set("exclude") {
		p.Exclude = f.exclude
	}
}

// settings loads the selected profile and applies the command's flags.
// flags may be nil for commands without profile overrides.
func (c *CLI) settings(cmd *cobra.Command, flags *profileFlags) (settings, error) {
	cfg, err := config.Load(c.conf)
	if err != nil {
		return settings{}, err
	}
	p, err := cfg.Profile(c.profile)
	if err != nil {
		return settings{}, err
	}
	s := settings{Profile: p, profileName: c.profile}
	if s.profileName == "" {
		s.profileName = config.DefaultProfile
	}
	if flags != nil {
		flags.apply(cmd, &s.Profile)
		s.noCache = flags.noCache
	}
	if cfg.Path() != "" {
		c.Logger.Debug("loaded configuration", "file", cfg.Path(), "profile", s.profileName)
	}
	return s, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner wired to the cache, load plan,
// reporter and stores that s asks for. Callers must Close it.
func (c *CLI) newRunner(ctx context.Context, s settings) (*pipeline.Runner, error) {
	backend, err := newCache(ctx, s)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, "profile:"+s.profileName+":")
	runner := pipeline.NewRunner(backend, keyer, c.Logger)

	if s.LoadPlan != "" {
		plan, err := loadplan.Load(s.LoadPlan)
		if err != nil {
			runner.Close()
			return nil, err
		}
		if err := plan.Validate(network.AllColumns()); err != nil {
			runner.Close()
			return nil, err
		}
		runner.Plan = plan
	}

	if s.ReportDir != "" {
		rep, err := anomaly.OpenReporter(s.ReportDir, c.Logger)
		if err != nil {
			runner.Close()
			return nil, err
		}
		runner.Reporter = rep
	}

	var stores storage.Multi
	if s.OutDir != "" {
		stores = append(stores, storage.NewDirStore(s.OutDir))
	}
	if s.MongoURI != "" {
		mongo, err := storage.NewMongoStore(ctx, storage.MongoConfig{URI: s.MongoURI, Database: s.MongoDB})
		if err != nil {
			runner.Close()
			return nil, err
		}
		stores = append(stores, mongo)
	}
	if len(stores) > 0 {
		runner.Store = stores
	}
	return runner, nil
}

// newCache picks the cache backend: none with --no-cache, redis when an
// address is configured, the XDG cache directory otherwise.
func newCache(ctx context.Context, s settings) (cache.Cache, error) {
	if s.noCache {
		return cache.NewNullCache(), nil
	}
	if s.RedisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{Addr: s.RedisAddr})
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tcgaloader/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
