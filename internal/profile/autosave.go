package profile

import (
	"context"

	"github.com/go-co-op/gocron/v2"
)

// StartAutosave schedules a save every autosave interval. Calling it while
// autosave is running does nothing.
func (m *Manager) StartAutosave() {
	m.schedMu.Lock()
	defer m.schedMu.Unlock()

	if m.sched != nil {
		return
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		m.log.Error().Err(err).Msg("create autosave scheduler")
		return
	}

	_, err = sched.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(m.autosave),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		m.log.Error().Err(err).Msg("schedule autosave")
		_ = sched.Shutdown()
		return
	}

	sched.Start()
	m.sched = sched
	m.log.Debug().Dur("interval", m.interval).Msg("autosave started")
}

// StopAutosave stops the autosave job and waits for a running save.
func (m *Manager) StopAutosave() {
	m.schedMu.Lock()
	defer m.schedMu.Unlock()

	if m.sched == nil {
		return
	}
	if err := m.sched.Shutdown(); err != nil {
		m.log.Warn().Err(err).Msg("stop autosave")
	}
	m.sched = nil
}

// autosave runs on the scheduler goroutine. Save logs its own failures
// and the next tick tries again; ErrNotLoggedIn means a logout won the race.
func (m *Manager) autosave() {
	if err := m.Save(context.Background()); err == nil {
		m.log.Debug().Msg("autosaved")
	}
}
