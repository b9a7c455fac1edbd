package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	log "github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bobonovski/gibbslda/config"
	"github.com/bobonovski/gibbslda/corpus"
	"github.com/bobonovski/gibbslda/model"
	"github.com/bobonovski/gibbslda/report"
)

var (
	configFile  string
	input       string
	topicModel  string
	topicNum    int
	iteration   int
	alpha       float64
	beta        float64
	seed        uint64
	initPolicy  string
	output      string
	chunkDocs   int
	chunkLength int
	chunkSplit  string
	stopLower   float64
	stopUpper   float64
	topWords    int
	metricsAddr string
	verify      bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gibbslda",
		Short: "Learn topics from a corpus with collapsed Gibbs sampling",
		Long: `gibbslda fits a latent Dirichlet allocation model to a corpus
read from a .csv file of word,document rows or from a plain text
chunked into documents. Settings come from --config and can be
overridden by flags. Topics are printed and written to <output>.csv,
<output>.json and the <output>.phi, .theta, .wt and .vocab tables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// glog reads its flags from the standard flag set
			return flag.CommandLine.Parse(nil)
		},
		RunE: run,
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "YAML or JSON config file")
	f.StringVar(&input, "input_file", "", "input training file (.csv or plain text)")
	f.StringVar(&topicModel, "model", "lda", fmt.Sprintf("model type, one of %v", model.Models()))
	f.IntVar(&topicNum, "k", 20, "number of topics")
	f.IntVar(&iteration, "iter", 10, "number of sweeps")
	f.Float64Var(&alpha, "alpha", 0.01, "document-topic mixture hyperparameter")
	f.Float64Var(&beta, "beta", 0.01, "topic-word mixture hyperparameter")
	f.Uint64Var(&seed, "seed", 0, "random seed")
	f.StringVar(&initPolicy, "init", "roundrobin", "initial assignment, roundrobin or random")
	f.StringVar(&output, "output", "", "output name, defaults to the input name")
	f.IntVar(&chunkDocs, "chunk_docs", 0, "split plain text into this many documents")
	f.IntVar(&chunkLength, "chunk_length", 0, "split plain text into documents of this many words")
	f.StringVar(&chunkSplit, "chunk_split", "", "start a new document at every occurrence of this string")
	f.Float64Var(&stopLower, "stop_lower", 0, "drop words in at most this fraction of documents")
	f.Float64Var(&stopUpper, "stop_upper", 0, "drop words in at least this fraction of documents")
	f.IntVar(&topWords, "top", 10, "words printed per topic, 0 for all")
	f.StringVar(&metricsAddr, "metrics_addr", "", "serve prometheus metrics on this address")
	f.BoolVar(&verify, "verify", false, "recount all tables after every sweep")

	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

// loadConfig reads --config, if any, and lays the changed flags over
// it.
func loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, err
		}
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("input_file", func() { cfg.Required.Source = input })
	set("model", func() { cfg.Sampler.Model = topicModel })
	set("k", func() { cfg.Required.Topics = topicNum })
	set("iter", func() { cfg.Required.Iterations = iteration })
	set("alpha", func() { cfg.Hyperparameters.Alpha = alpha })
	set("beta", func() { cfg.Hyperparameters.Beta = beta })
	set("seed", func() { cfg.Sampler.Seed = seed })
	set("init", func() { cfg.Sampler.Init = initPolicy })
	set("output", func() { cfg.Required.OutputName = output })
	set("chunk_docs", func() { cfg.Chunking.NumDocs = config.On(float64(chunkDocs)) })
	set("chunk_length", func() { cfg.Chunking.DocLength = config.On(float64(chunkLength)) })
	set("chunk_split", func() { cfg.Chunking.SplitString = chunkSplit })
	set("stop_lower", func() { cfg.Stopwords.LowerLimit = config.On(stopLower) })
	set("stop_upper", func() { cfg.Stopwords.UpperLimit = config.On(stopUpper) })
	set("top", func() { cfg.Sampler.Top = topWords })
	set("metrics_addr", func() { cfg.Sampler.MetricsAddr = metricsAddr })
	set("verify", func() { cfg.Sampler.Verify = verify })

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// read training data
	data, err := corpus.Load(cfg.Required.Source, cfg.CorpusChunking())
	if err != nil {
		return err
	}
	cfg.StopwordFilter().Apply(data)
	log.Infof("%d stopwords removed, %d tokens left", len(data.Stopwords), data.Occurrences())

	// init model
	mc, err := cfg.ModelConfig()
	if err != nil {
		return err
	}
	ctor, err := model.GetModel(cfg.Sampler.Model)
	if err != nil {
		return err
	}
	var opts []model.Option
	if cfg.Sampler.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		opts = append(opts, model.WithMetrics(model.NewMetrics(reg)))
		srv := serveMetrics(cfg.Sampler.MetricsAddr, reg)
		defer shutdown(srv)
	}
	m, err := ctor(data.Docs, mc, opts...)
	if err != nil {
		return err
	}

	trainErr := m.Train(ctx)
	if trainErr != nil && m.Status() != model.StatusStopped {
		return trainErr
	}
	if trainErr != nil {
		log.Warningf("writing results of %d sweeps", m.Sweeps())
	}

	if err := writeResults(cfg, data, m, mc); err != nil {
		return err
	}
	return trainErr
}

func writeResults(cfg *config.Config, data *corpus.Corpus, m model.Model, mc model.Config) error {
	out := cfg.OutputName()
	topics := report.Topics(m.State())
	if err := report.PrintTopics(os.Stdout, topics, cfg.Sampler.Top); err != nil {
		return err
	}

	if err := writeFile(out+".csv", func(w io.Writer) error {
		return report.WriteCSV(w, topics)
	}); err != nil {
		return err
	}

	src := filepath.Base(cfg.Required.Source)
	dataset := strings.TrimSuffix(src, filepath.Ext(src))
	r, err := report.NewRun(dataset, data, m.State(), mc, m.Sweeps())
	if err != nil {
		return err
	}
	if err := writeFile(out+".json", func(w io.Writer) error {
		return report.WriteJSON(w, r)
	}); err != nil {
		return err
	}
	log.Infof("run %s written to %s.csv and %s.json", r.ID, out, out)

	if err := m.SavePhi(out); err != nil {
		return err
	}
	if err := m.SaveTheta(out); err != nil {
		return err
	}
	return m.SaveWordTopic(out)
}

func writeFile(fn string, write func(io.Writer) error) (err error) {
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func serveMetrics(addr string, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Infof("serving metrics on %s/metrics", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("metrics server: %v", err)
		}
	}()
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warningf("metrics server shutdown: %v", err)
	}
}

func main() {
	defer log.Flush()
	if err := newRootCmd().Execute(); err != nil {
		log.Errorf("%v", err)
		log.Flush()
		os.Exit(1)
	}
}
