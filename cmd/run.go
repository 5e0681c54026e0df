package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dianaf18/jobpilot/internal/ai"
	"github.com/dianaf18/jobpilot/internal/ai/gemini"
	"github.com/dianaf18/jobpilot/internal/dispatch"
	"github.com/dianaf18/jobpilot/internal/generator"
	"github.com/dianaf18/jobpilot/internal/job"
	"github.com/dianaf18/jobpilot/internal/logger"
	"github.com/dianaf18/jobpilot/internal/profile"
	"github.com/dianaf18/jobpilot/internal/report"
	"github.com/dianaf18/jobpilot/internal/scoring"
	"github.com/dianaf18/jobpilot/internal/search"
	"github.com/dianaf18/jobpilot/internal/secrets"
)

const (
	PromptYes             = "Yes"
	PromptNo              = "No"
	PromptReportByCompany = "Report by company"
	PromptListingsToFile  = "Dump listings to file"

	defaultStoreFile = "jobpilot-profiles.json"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Proceed?",
	Items: []string{PromptYes, PromptNo, PromptReportByCompany, PromptListingsToFile},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one search/score/dispatch cycle",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before dispatching applications")
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting jobpilot", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil || config.Profile == nil || config.Profile.Email == "" {
		logger.Fatal("profile email is required in the configuration")
	}

	store, userProfile := loadProfile(config, logger)

	analyzer := profile.NewAnalyzer()
	criteria, err := analyzer.AnalyzeProfile(userProfile)
	if err != nil {
		if errors.Is(err, profile.ErrInvalidCriteria) {
			logger.Fatal("profile is incomplete",
				zap.Error(err),
				zap.String("hint", "fill profile.experience or profile.skills in the configuration"),
			)
		}
		logger.Fatal("analyzing profile", zap.Error(err))
	}

	logger.Info("profile analyzed",
		zap.String("domain", criteria.Domain),
		zap.String("level", string(criteria.Level)),
		zap.Float64("threshold", criteria.Threshold),
	)

	location := ""
	if config.Search != nil {
		location = config.Search.Location
	}

	aggregator := buildAggregator(config, logger)
	listings := aggregator.Search(ctx, criteria, location)

	if listings.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no listings found"))
		return
	}

	scorer := scoring.NewScorer(logger)
	ranked := scorer.FilterAndRank(listings, criteria)
	userProfile.RecordAnalysis(listings.Len(), time.Now().UTC())

	if ranked.Len() == 0 {
		saveProfile(store, userProfile, logger)
		logger.Info("exiting", zap.String("reason", "no listings above the threshold"))
		return
	}

	composer := buildComposer(ctx, config, logger)
	gen := generator.New(composer, logger)

	dispatcher := dispatch.New(dispatch.NewSimulatedChannel(time.Now().UnixNano()), gen, logger)
	if config.Apply != nil && config.Apply.PauseSeconds > 0 {
		dispatcher.Pause = time.Duration(config.Apply.PauseSeconds) * time.Second
	}

	action := PromptYes
	for {
		var err error
		if cmd.Flag("auto-approve").Value.String() == "false" {
			_, action, err = prompt.Run()
			if err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}

		logger.Info("current list of listings", zap.Int("count", ranked.Len()))

		if err := handleAction(ctx, action, dispatcher, store, userProfile, criteria, ranked, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, dispatcher *dispatch.Dispatcher, store profile.Store, userProfile *profile.UserProfile, criteria *search.Criteria, ranked *job.Listings, logger *zap.Logger) error {
	switch action {
	case PromptYes:
		records := dispatcher.Dispatch(ctx, ranked, userProfile, criteria, userProfile.Settings.DailyLimit)
		daily := report.NewGenerator().Daily(records)

		pretty, _ := json.MarshalIndent(daily, "", "  ")
		logger.Info(string(pretty), zap.Int("applications_sent", daily.ApplicationsSent))

		saveProfile(store, userProfile, logger)
		return errExit
	case PromptNo:
		logger.Info("exiting", zap.String("reason", "got no from prompt"))
		return errExit
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(ranked.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("listings count", ranked.Len()))
		return nil
	case PromptListingsToFile:
		filename, err := ranked.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump listings to file: %w", err)
		}
		logger.Info("dumping listings to file", zap.String("filename", filename))
		return nil
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func loadProfile(config *Config, logger *zap.Logger) (profile.Store, *profile.UserProfile) {
	storeFile := config.StoreFile
	if storeFile == "" {
		storeFile = defaultStoreFile
	}
	store := profile.NewFileStore(storeFile)

	userProfile, err := store.Get(config.Profile.Email)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			logger.Fatal("loading profile", zap.Error(err))
		}
		userProfile = profile.New(config.Profile.Email, config.Profile.Name)
		logger.Info("created a new profile", zap.String("email", config.Profile.Email))
	}

	// Configuration always wins over the stored copy for identity fields.
	if config.Profile.Name != "" {
		userProfile.Name = config.Profile.Name
	}
	userProfile.Phone = config.Profile.Phone
	userProfile.Experience = config.Profile.Experience
	userProfile.Skills = config.Profile.Skills

	if config.Apply != nil {
		if config.Apply.DailyLimit > 0 {
			userProfile.Settings.DailyLimit = config.Apply.DailyLimit
		}
		if config.Apply.Threshold > 0 {
			userProfile.Settings.Threshold = config.Apply.Threshold
		}
	}

	return store, userProfile
}

func saveProfile(store profile.Store, userProfile *profile.UserProfile, logger *zap.Logger) {
	if err := store.Put(userProfile.Email, userProfile); err != nil {
		logger.Warn("saving profile", zap.Error(err))
	}
}

func buildAggregator(config *Config, logger *zap.Logger) *search.Aggregator {
	seed := time.Now().UnixNano()
	var configured []*SourceConfig
	if config.Search != nil {
		configured = config.Search.Sources
		if config.Search.Seed != 0 {
			seed = config.Search.Seed
		}
	}

	var sources []job.SourceAdapter
	for _, sc := range configured {
		switch strings.ToLower(sc.Type) {
		case "http":
			sources = append(sources, job.NewHTTPSource(sc.Name, sc.Endpoint, logger))
		case "", "simulated":
			sources = append(sources, job.NewSimulatedSource(sc.Name, seed))
		default:
			logger.Warn("skipping unknown source type", zap.String("type", sc.Type), zap.String("name", sc.Name))
		}
	}

	if len(sources) == 0 {
		sources = append(sources, job.NewSimulatedSource("simulated", seed))
	}

	aggregator := search.NewAggregator(sources, logger)
	if config.Search != nil {
		aggregator.Dedupe = config.Search.Dedupe
		if config.Search.Parallelism > 0 {
			aggregator.Parallelism = config.Search.Parallelism
		}
	}

	return aggregator
}

// buildComposer returns the AI letter composer, or nil when AI is disabled
// or misconfigured. A nil composer means template letters only.
func buildComposer(ctx context.Context, config *Config, logger *zap.Logger) ai.Composer {
	if config.AI == nil || !config.AI.Enabled {
		return nil
	}

	provider := strings.TrimSpace(strings.ToLower(config.AI.Provider))
	if provider != "" && provider != "gemini" {
		logger.Warn("unsupported ai provider, letters fall back to templates", zap.String("provider", config.AI.Provider))
		return nil
	}

	if config.AI.Gemini == nil {
		logger.Warn("gemini configuration is missing, letters fall back to templates")
		return nil
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: config.AI.Gemini.APIKeyFile,
	})
	if err != nil {
		logger.Warn("loading gemini api key, letters fall back to templates",
			zap.Error(err),
			zap.String("hint", "set ai.gemini.api-key-file or GEMINI_API_KEY_FILE"),
		)
		return nil
	}

	gen, err := gemini.NewGenerator(ctx, apiKey, config.AI.Gemini.Model)
	if err != nil {
		logger.Warn("creating gemini generator, letters fall back to templates", zap.Error(err))
		return nil
	}

	composerLogger := logger.With(
		zap.String("provider", "gemini"),
		zap.String("model", gen.Model()),
	)

	return gemini.NewComposer(gen, config.AI.Gemini.MaxRetries, config.AI.Gemini.MaxLogLength, composerLogger)
}
