package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/cfo-helper-api/infrastructure/repository"
	"github.com/vfg2006/cfo-helper-api/internal/config"
	"github.com/vfg2006/cfo-helper-api/internal/usecases/reporting"
)

// MonthlyReportSyncConfig representa a configuração do agendador de relatórios mensais
type MonthlyReportSyncConfig struct {
	CronSchedule  string
	MonthLookback int
	SyncEnabled   bool
}

// MonthlyReportSyncService materializa os relatórios mensais consolidados
// na virada do mês para todos os usuários com transações no período
type MonthlyReportSyncService struct {
	scheduler  *gocron.Scheduler
	config     MonthlyReportSyncConfig
	reportRepo repository.MonthlyReportRepository
	reporter   reporting.Reporter

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time

	now func() time.Time
}

// NewMonthlyReportSyncService cria o serviço de sincronização de relatórios mensais
func NewMonthlyReportSyncService(
	reportRepo repository.MonthlyReportRepository,
	reporter reporting.Reporter,
	appConfig *config.Config,
) *MonthlyReportSyncService {
	syncConfig := MonthlyReportSyncConfig{
		CronSchedule:  appConfig.MonthlyReportSync.CronSchedule,
		MonthLookback: appConfig.MonthlyReportSync.MonthLookback,
		SyncEnabled:   appConfig.MonthlyReportSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  syncConfig.CronSchedule,
		"month_lookback": syncConfig.MonthLookback,
		"sync_enabled":   syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de relatórios mensais carregada")

	return &MonthlyReportSyncService{
		scheduler:  gocron.NewScheduler(time.Local),
		config:     syncConfig,
		reportRepo: reportRepo,
		reporter:   reporter,
		now:        time.Now,
	}
}

// Start inicia o agendador
func (s *MonthlyReportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de relatórios mensais desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).
		Info("Iniciando agendador de relatórios mensais")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMonthlyReports()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de relatórios mensais: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de relatórios mensais")
		s.scheduler.Stop()
	}()

	return nil
}

// syncMonthlyReports consolida o mês fechado para cada usuário com
// transações no período. Execuções sobrepostas são ignoradas.
func (s *MonthlyReportSyncService) syncMonthlyReports() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de relatórios mensais já em andamento, ignorando")
		return
	}
	s.syncRunning = true
	s.lastSyncStartedAt = s.now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = s.now()
		s.syncMutex.Unlock()
	}()

	month, year := s.targetMonth()

	userIDs, err := s.reportRepo.ListUserIDsWithTransactions(month, year)
	if err != nil {
		logrus.WithError(err).Error("Erro ao listar usuários com transações no mês")
		return
	}

	logrus.WithFields(logrus.Fields{
		"month": month,
		"year":  year,
		"users": len(userIDs),
	}).Info("Consolidando relatórios mensais")

	var failures int
	for _, userID := range userIDs {
		if _, err := s.reporter.SaveMonthlyReport(userID, month, year); err != nil {
			failures++
			logrus.WithError(err).Warnf("Erro ao consolidar relatório mensal do usuário %s", userID)
		}
	}

	logrus.WithFields(logrus.Fields{
		"total":    len(userIDs),
		"failures": failures,
	}).Info("Consolidação de relatórios mensais concluída")
}

// targetMonth resolve o mês fechado a consolidar, recuando o lookback
// configurado a partir do mês corrente
func (s *MonthlyReportSyncService) targetMonth() (int, int) {
	lookback := s.config.MonthLookback
	if lookback < 1 {
		lookback = 1
	}

	target := s.now().AddDate(0, -lookback, 0)

	return int(target.Month()), target.Year()
}
