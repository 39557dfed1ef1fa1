package typing

import "go.uber.org/zap"

// Observer receives state changes. Delivery is fire and forget: a panicking
// observer is logged and otherwise ignored. Observers run on the goroutine
// that caused the transition and must not call Start, Pause, Resume or Stop
// synchronously.
type Observer interface {
	OnStateChange(status Status)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(status Status)

// OnStateChange calls f.
func (f ObserverFunc) OnStateChange(status Status) { f(status) }

// MultiObserver fans a notification out to several observers. One failing
// observer does not keep the others from being called. An engine delivers to
// each member itself so that failures land in its log.
type MultiObserver []Observer

// OnStateChange notifies every member.
func (m MultiObserver) OnStateChange(status Status) {
	for _, o := range m {
		deliver(o, status, zap.NewNop())
	}
}

func deliver(o Observer, status Status, logger *zap.Logger) {
	if o == nil {
		return
	}
	if m, ok := o.(MultiObserver); ok {
		for _, member := range m {
			deliver(member, status, logger)
		}
		return
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Warn("Observer failed", zap.String("status", string(status)), zap.Any("panic", r))
		}
	}()
	o.OnStateChange(status)
}
