package events

// BadgeEarned fires when a user reaches a badge tier for the first time.
type BadgeEarned struct {
	UserID string
	Level  int
}

type Bus struct {
	BadgeEarned chan BadgeEarned
}

func NewBus() *Bus {
	return &Bus{
		BadgeEarned: make(chan BadgeEarned, 64),
	}
}

// Publish is non-blocking; if nothing drains the bus the event is dropped.
// Notifications are best-effort relative to the ledger write.
func (b *Bus) Publish(ev BadgeEarned) {
	select {
	case b.BadgeEarned <- ev:
	default:
	}
}
