package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/andrewyi/educrawler/src/analyzer"
	"github.com/andrewyi/educrawler/src/classifier"
	"github.com/andrewyi/educrawler/src/config"
	"github.com/andrewyi/educrawler/src/controller"
	"github.com/andrewyi/educrawler/src/dbstorage"
	"github.com/andrewyi/educrawler/src/downloader"
	"github.com/andrewyi/educrawler/src/entity"
	"github.com/andrewyi/educrawler/src/filestorage"
	"github.com/andrewyi/educrawler/src/integrator"
	"github.com/andrewyi/educrawler/src/registry"
	"github.com/andrewyi/educrawler/src/taxonomy"
	"github.com/andrewyi/educrawler/src/util"
)

type Server struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
	config *config.Config

	out     io.Writer // 控制台报告
	logFile *os.File
}

// RunResult 一次完整运行的汇总
type RunResult struct {
	Success      bool
	TotalCourses int
	JSONPath     string
	CSVPath      string
	Curriculum   string // 大纲与最终报告所在目录
	Integration  *integrator.Result
	Errors       []string
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		ctx:    ctx,
		cancel: cancel,
		out:    os.Stdout,
	}
}

func (s *Server) initLog() {
	var logger = log.New()
	logger.SetFormatter(&log.TextFormatter{
		DisableColors: true,
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stdout)

	if s.config.Log.File != "" {
		if dir := filepath.Dir(s.config.Log.File); dir != "" {
			_ = os.MkdirAll(dir, os.ModePerm)
		}
		f, err := os.OpenFile(s.config.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.WithError(err).WithField("file", s.config.Log.File).Warn("fail to open log file, console only")
		} else {
			s.logFile = f
			logger.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	if s.config.Log.Context {
		logger.SetReportCaller(true)
	}

	if logLevel, err := log.ParseLevel(s.config.Log.Level); err != nil {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(logLevel)
	}
	s.logger = logger
}

func (s *Server) setup(configPath string) error {
	var cfg = &config.Config{}
	if err := util.ReadConfig(configPath, cfg); err != nil {
		return fmt.Errorf("fail to load config, err: %w", err)
	}
	cfg.ApplyDefaults()
	s.config = cfg

	s.initLog()
	go s.watchSignal()
	return nil
}

// Start 对应run命令，也是默认命令
func (s *Server) Start(c *cli.Context) error {
	if err := s.setup(c.GlobalString("config")); err != nil {
		return err
	}
	defer s.Stop()

	if topics := c.StringSlice("topic"); len(topics) > 0 {
		s.config.Crawler.Topics = topics
	}
	if err := checkTopics(s.taxonomy(), s.config.Crawler.Topics); err != nil {
		return err
	}

	reg, err := s.loadRegistry()
	if err != nil {
		return err
	}

	s.printBanner()
	res := s.Run(reg, !c.Bool("no-db"))
	s.printSummary(res)
	return nil
}

// Integrate 对应integrate命令：把之前生成的json报告重新导入数据库
func (s *Server) Integrate(c *cli.Context) error {
	if err := s.setup(c.GlobalString("config")); err != nil {
		return err
	}
	defer s.Stop()

	input := c.String("input")
	if input == "" {
		input = filepath.Join(s.config.Output.Dir, s.config.Output.JSONFile)
	}
	report, err := filestorage.LoadReport(input)
	if err != nil {
		return err
	}

	res, err := s.integrate(report.AllCourses)
	if err != nil {
		return err
	}
	s.printIntegration(res)
	return nil
}

// Classify 对应classify命令，只做本地分类，不需要配置文件
func (s *Server) Classify(c *cli.Context) error {
	if !c.Args().Present() {
		return fmt.Errorf("usage: classify <title> [description]")
	}
	tax := taxonomy.Default()
	if c.Bool("extended") {
		tax = taxonomy.Extended()
	}
	labels := classifier.New(tax).Classify(c.Args().Get(0), c.Args().Get(1))
	fmt.Fprintln(s.out, strings.Join(labels, ", "))
	return nil
}

func (s *Server) loadRegistry() (*registry.Registry, error) {
	reg := registry.Default()
	if s.config.Crawler.RegistryFile != "" {
		var err error
		if reg, err = registry.LoadFile(s.config.Crawler.RegistryFile); err != nil {
			return nil, err
		}
	}
	return reg.Focus(s.config.Crawler.Topics), nil
}

// 主题名拼错时所有条目都会被判为other，直接拒绝
func checkTopics(tax *taxonomy.Taxonomy, topics []string) error {
	var unknown []string
	for _, t := range topics {
		if !tax.Has(t) {
			unknown = append(unknown, t)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("unknown topics %s, expected one of %s",
			strings.Join(unknown, ", "), strings.Join(tax.Names(), ", "))
	}
	return nil
}

func (s *Server) taxonomy() *taxonomy.Taxonomy {
	if s.config.Crawler.ExtendedKeywords {
		return taxonomy.Extended()
	}
	return taxonomy.Default()
}

// Run 抓取全部站点并写入各个存储，任何一个存储失败都不影响其他存储
func (s *Server) Run(reg *registry.Registry, withDB bool) RunResult {
	cfg := s.config
	clf := classifier.New(s.taxonomy(), classifier.WithTopics(cfg.Crawler.Topics...))

	d := downloader.NewSimpleDownloader(s.ctx, downloader.Settings{
		Timeout:     time.Duration(cfg.HTTP.Timeout) * time.Second,
		Retry:       int(cfg.HTTP.Retry),
		BackoffBase: time.Duration(cfg.HTTP.BackoffBase) * time.Second,
		RateCalls:   int(cfg.HTTP.RateCalls),
		RatePeriod:  time.Duration(cfg.HTTP.RatePeriod) * time.Second,
		UserAgent:   cfg.HTTP.UserAgent,
		RobotsAgent: cfg.HTTP.RobotsAgent,
	}, s.logger)
	table := analyzer.NewTable(s.ctx, d, clf, s.logger)
	ctrl := controller.NewSimpleController(s.ctx, table, time.Duration(cfg.Crawler.SourceDelay)*time.Second, s.logger)

	records := ctrl.Run(reg)
	res := RunResult{TotalCourses: len(records)}
	if len(records) == 0 {
		s.logger.Warn("no courses found")
		res.Errors = append(res.Errors, "no courses found")
		return res
	}

	jsonStorage := filestorage.NewJSONFileStorage(cfg.Output.Dir, cfg.Output.JSONFile, clf.Topics())
	if fp, err := jsonStorage.Store(records); err != nil {
		s.logger.WithError(err).Error("fail to store json report")
		res.Errors = append(res.Errors, err.Error())
	} else {
		s.logger.WithField("file", fp).Info("results saved")
		res.JSONPath = fp
	}

	resolver := integrator.NewResolver(cfg.Integration.ModuleMap)
	if cfg.Output.CSVFile != "" {
		csvStorage := filestorage.NewCSVFileStorage(cfg.Output.Dir, cfg.Output.CSVFile, resolver)
		if fp, err := csvStorage.Store(records); err != nil {
			s.logger.WithError(err).Error("fail to store csv summary")
			res.Errors = append(res.Errors, err.Error())
		} else {
			res.CSVPath = fp
		}
	}

	if cfg.Output.CurriculumDir != "-" {
		var related []string
		for _, fp := range []string{res.JSONPath, res.CSVPath} {
			if fp != "" {
				related = append(related, fp)
			}
		}
		curriculum := filestorage.NewCurriculumFileStorage(filepath.Join(cfg.Output.Dir, cfg.Output.CurriculumDir),
			int(cfg.Integration.XP), related...)
		if dir, err := curriculum.Store(records); err != nil {
			s.logger.WithError(err).Error("fail to store curriculum")
			res.Errors = append(res.Errors, err.Error())
		} else {
			res.Curriculum = dir
		}
	}

	if withDB && cfg.Database.Enabled {
		ir, err := s.integrate(records)
		if err != nil {
			res.Errors = append(res.Errors, err.Error())
		} else {
			res.Integration = ir
			res.Errors = append(res.Errors, ir.Errors...)
		}
	}

	filestorage.WriteTopicReport(s.out, records)
	filestorage.WriteSourceAnalysis(s.out, records)
	res.Success = len(res.Errors) == 0
	return res
}

// 导入期间只打开一个数据库连接，结束后立即关闭
func (s *Server) integrate(records []entity.CourseRecord) (*integrator.Result, error) {
	db, err := dbstorage.NewSimpleDBStorage(s.config.Database.Driver, s.config.Database.URL)
	if err != nil {
		s.logger.WithError(err).Error("fail to create dbstorage handler")
		return nil, err
	}
	defer db.Close()

	in := integrator.NewIntegrator(db, integrator.NewResolver(s.config.Integration.ModuleMap),
		int(s.config.Integration.XP), s.logger)
	res := in.Integrate(records)
	return &res, nil
}

func (s *Server) printBanner() {
	fmt.Fprintln(s.out, "🎯 Scraping educational courses for:")
	fmt.Fprintln(s.out, "   • PC Basics & Computer Skills")
	fmt.Fprintln(s.out, "   • Programming & Development")
	fmt.Fprintln(s.out, "   • English Learning")
	fmt.Fprintln(s.out, "From legitimate open educational resources...")
	fmt.Fprintln(s.out)
}

func (s *Server) printSummary(res RunResult) {
	if res.TotalCourses == 0 {
		fmt.Fprintln(s.out, "❌ No courses found. Check your internet connection and try again.")
		return
	}
	if res.JSONPath != "" {
		fmt.Fprintf(s.out, "\n✅ Results saved to: %s\n", res.JSONPath)
	}
	if res.CSVPath != "" {
		fmt.Fprintf(s.out, "CSV summary: %s\n", res.CSVPath)
	}
	if res.Curriculum != "" {
		fmt.Fprintf(s.out, "Curriculum and final report: %s\n", res.Curriculum)
	}
	fmt.Fprintf(s.out, "Found %d relevant educational courses!\n", res.TotalCourses)
	if res.Integration != nil {
		s.printIntegration(res.Integration)
	}
}

func (s *Server) printIntegration(res *integrator.Result) {
	fmt.Fprintf(s.out, "Integrated %d lessons into the learning app\n", res.Integrated)
	for module, n := range res.ModulesBreakdown {
		fmt.Fprintf(s.out, "  %s: %d\n", module, n)
	}
	if len(res.Duplicates) > 0 {
		fmt.Fprintf(s.out, "  %d duplicated lesson ids ignored\n", len(res.Duplicates))
	}
	for _, e := range res.Errors {
		fmt.Fprintf(s.out, "  ! %s\n", e)
	}
}

// 收到中断信号时取消ctx，正在进行的等待与请求会尽快返回
func (s *Server) watchSignal() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)
	select {
	case <-c:
		s.logger.Warn("interrupt signal, server gonna stop")
		s.cancel()
	case <-s.ctx.Done():
	}
}

func (s *Server) Stop() {
	s.cancel()
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}
