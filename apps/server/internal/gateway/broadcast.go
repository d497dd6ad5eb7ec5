package gateway

// broadcaster is the best-effort fan-out every Gateway offers each Session:
// one failed or slow listener never blocks or drops the others, matching
// both the teacher's Gateway.Broadcast (drop-if-buffer-full) and the
// original's reliance on the websockets library's own broadcast() helper
// for the same guarantee.
type broadcaster struct {
	add    chan *Connection
	remove chan *Connection
	send   chan []byte
	done   chan struct{}
}

func newBroadcaster() *broadcaster {
	b := &broadcaster{
		add:    make(chan *Connection),
		remove: make(chan *Connection),
		send:   make(chan []byte, 64),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *broadcaster) run() {
	listeners := make(map[*Connection]struct{})
	for {
		select {
		case c := <-b.add:
			listeners[c] = struct{}{}
		case c := <-b.remove:
			delete(listeners, c)
		case msg := <-b.send:
			for c := range listeners {
				select {
				case c.Send <- msg:
				default:
					// slow consumer: drop rather than block the fan-out
				}
			}
		case <-b.done:
			return
		}
	}
}

func (b *broadcaster) addListener(c *Connection) {
	select {
	case b.add <- c:
	case <-b.done:
	}
}

func (b *broadcaster) removeListener(c *Connection) {
	select {
	case b.remove <- c:
	case <-b.done:
	}
}

func (b *broadcaster) broadcast(msg []byte) {
	select {
	case b.send <- msg:
	case <-b.done:
	}
}

func (b *broadcaster) stop() {
	close(b.done)
}
