package gfx

// EventSource returns the next pending event, or false once the queue is empty.
// It never blocks.
type EventSource func() (Event, bool)

type EventsConsumerStrategy interface {
	Consume(poll EventSource, handle func(Event)) int
}

type DrainAllStrategy struct{}

func (DrainAllStrategy) Consume(poll EventSource, handle func(Event)) int {
	count := 0
	for {
		event, ok := poll()
		if !ok {
			return count
		}
		handle(event)
		count++
	}
}

// DrainMaxStrategy stops after Max events; the rest wait for the next frame.
type DrainMaxStrategy struct {
	Max int
}

func (s DrainMaxStrategy) Consume(poll EventSource, handle func(Event)) int {
	max := s.Max
	if max <= 0 {
		max = 1
	}
	count := 0
	for count < max {
		event, ok := poll()
		if !ok {
			break
		}
		handle(event)
		count++
	}
	return count
}

func DrainAll() EventsConsumerStrategy {
	return DrainAllStrategy{}
}

func DrainMax(max int) EventsConsumerStrategy {
	return DrainMaxStrategy{Max: max}
}
