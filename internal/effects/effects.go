// Package effects describes the side effects a state transition asks its
// caller to perform: user-facing notifications and screen navigation.
//
// Transitions in the cart, splitter and session packages never perform
// effects themselves. They return a List and the caller dispatches it.
package effects

import "github.com/mmynk/dinesplit/internal/models"

// Level is the severity of a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Effect is either a Notify or a Navigate.
type Effect interface {
	isEffect()
}

// Notify asks the caller to show a toast-style message.
type Notify struct {
	Level   Level
	Message string
}

// Navigate asks the caller to move to another screen.
// Cart is the navigation payload; nil means no payload was carried.
type Navigate struct {
	To   models.Screen
	Cart []models.CartLine
}

func (Notify) isEffect()   {}
func (Navigate) isEffect() {}

// List is an ordered list of effects.
type List []Effect

// Success, Info and Error build single notifications.
func Success(msg string) Notify { return Notify{Level: LevelSuccess, Message: msg} }
func Info(msg string) Notify    { return Notify{Level: LevelInfo, Message: msg} }
func Error(msg string) Notify   { return Notify{Level: LevelError, Message: msg} }

// Notifications returns the Notify effects in l, in order.
func (l List) Notifications() []Notify {
	var out []Notify
	for _, e := range l {
		if n, ok := e.(Notify); ok {
			out = append(out, n)
		}
	}
	return out
}

// Navigations returns the Navigate effects in l, in order.
func (l List) Navigations() []Navigate {
	var out []Navigate
	for _, e := range l {
		if n, ok := e.(Navigate); ok {
			out = append(out, n)
		}
	}
	return out
}
