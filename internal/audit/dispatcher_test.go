package audit

import (
	"testing"
	"time"
)

type captured struct {
	userID   *uint
	action   string
	entity   string
	entityID *uint
}

type captureSink struct {
	entries chan captured
}

func (s *captureSink) Log(userID *uint, action, entity string, entityID *uint, _ any) error {
	s.entries <- captured{
		userID:   userID,
		action:   action,
		entity:   entity,
		entityID: entityID,
	}
	return nil
}

func TestDispatchCarriesEntityID(t *testing.T) {
	sink := &captureSink{entries: make(chan captured, 4)}
	d := &Dispatcher{logger: sink, queue: make(chan Event, 4)}
	go d.worker()
	defer close(d.queue)

	adminID := uint(1)
	classID := uint(42)
	d.Dispatch(Event{
		UserID:   &adminID,
		Action:   "class_deleted",
		Entity:   "gym_class",
		EntityID: &classID,
	})

	select {
	case got := <-sink.entries:
		if got.action != "class_deleted" || got.entity != "gym_class" {
			t.Fatalf("logged (%s, %s), want (class_deleted, gym_class)", got.action, got.entity)
		}
		if got.entityID == nil || *got.entityID != classID {
			t.Fatalf("entity id = %v, want %d", got.entityID, classID)
		}
		if got.userID == nil || *got.userID != adminID {
			t.Fatalf("user id = %v, want %d", got.userID, adminID)
		}
	case <-time.After(time.Second):
		t.Fatal("event never reached the sink")
	}
}

func TestDispatchOnNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Dispatch(Event{Action: "booking_created", Entity: "booking"})
}
