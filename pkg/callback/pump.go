package callback

import "sync"

// Record is one dispatch record: a source tag (for diagnostics) and
// the closure that actually invokes the registered user callback with
// its already-captured data.
type Record struct {
	Source   string
	Function func()
}

// Pump is the CallbackPump: one dedicated worker goroutine, spawned by
// Start and joined by Stop, draining a BlockingQueue in strict FIFO
// order. A growable queue rather than drop-when-full, since callback
// delivery must never silently drop an event.
type Pump struct {
	queue *BlockingQueue
	wg    sync.WaitGroup
}

// NewPump returns a Pump with no worker running yet; call Start.
func NewPump() *Pump {
	return &Pump{queue: NewBlockingQueue()}
}

// Start spawns the dedicated worker. Calling Start twice without an
// intervening Stop+Reset is a programmer error.
func (p *Pump) Start() {
	p.wg.Add(1)
	go p.run()
}

func (p *Pump) run() {
	defer p.wg.Done()
	for {
		item, ok := p.queue.WaitForData()
		if !ok {
			return
		}
		item.(Record).Function()
	}
}

// Enqueue schedules fn to run on the worker, tagged with source for
// diagnostics. Never blocks the caller.
func (p *Pump) Enqueue(source string, fn func()) {
	p.queue.Enqueue(Record{Source: source, Function: fn})
}

// Stop releases the queue (waking the worker out of WaitForData) and
// joins it, draining whatever was already queued before returning.
func (p *Pump) Stop() {
	p.queue.Release()
	p.wg.Wait()
}

// Reset purges any queued records and re-arms the queue for the next
// Start. Call after Stop, before reconnecting.
func (p *Pump) Reset() {
	p.queue.Reset()
}
