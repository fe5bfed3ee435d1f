package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"DashPull/internal/domain/models"
	domrepo "DashPull/internal/domain/repository"
	"DashPull/internal/services/prefs"
	applogger "DashPull/pkg/logger"
)

const publishTimeout = 5 * time.Second

// PreferencesUseCase exposes the preference store and publishes a
// PreferencesChanged event for every change, whoever made it.
type PreferencesUseCase struct {
	store       *prefs.Store
	publisher   domrepo.EventPublisher
	topic       string
	logger      *applogger.Logger
	now         func() time.Time
	unsubscribe func()
}

func NewPreferencesUseCase(store *prefs.Store, publisher domrepo.EventPublisher, topic string, l *applogger.Logger) *PreferencesUseCase {
	uc := &PreferencesUseCase{
		store:     store,
		publisher: publisher,
		topic:     topic,
		logger:    loggerOrNop(l),
		now:       time.Now,
	}
	uc.unsubscribe = store.Subscribe(uc.publish)
	return uc
}

func (uc *PreferencesUseCase) Current() models.Preferences { return uc.store.Current() }

// Update applies u and returns the resulting state and whether it changed.
func (uc *PreferencesUseCase) Update(u models.PreferencesUpdate) (models.Preferences, bool) {
	changed := uc.store.Set(u)
	return uc.store.Current(), changed
}

// Watch calls fn after every change until the returned func is called.
func (uc *PreferencesUseCase) Watch(fn prefs.Listener) func() {
	return uc.store.Subscribe(fn)
}

// Close stops publishing events.
func (uc *PreferencesUseCase) Close() {
	if uc.unsubscribe != nil {
		uc.unsubscribe()
	}
}

func (uc *PreferencesUseCase) publish(prev, cur models.Preferences) {
	if uc.publisher == nil || uc.topic == "" {
		return
	}
	evt := models.PreferencesChanged{
		ID:       uuid.NewString(),
		Previous: prev,
		Current:  cur,
		At:       uc.now().UnixMilli(),
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := uc.publisher.Publish(ctx, uc.topic, evt.ID, evt); err != nil {
		uc.logger.Warn("publish preferences event",
			applogger.String("topic", uc.topic),
			applogger.Error(err),
		)
	}
}
