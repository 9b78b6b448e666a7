package irtag

// Edge is the direction of a transition on the detector output.
//
// Demodulating receivers idle high and pull low while they see carrier, so a
// Falling edge marks the start of a burst and a Rising edge marks its end.
type Edge uint8

const (
	Falling Edge = iota
	Rising
)

func (e Edge) String() string {
	if e == Rising {
		return "rising"
	}
	return "falling"
}

// EdgeHandler consumes detector transitions. HandleEdge is called from an
// interrupt handler on real hardware, so implementations must not block or
// allocate.
type EdgeHandler interface {
	HandleEdge(edge Edge, now uint32)
}

// EdgeHandlerFunc adapts a plain function to EdgeHandler.
type EdgeHandlerFunc func(edge Edge, now uint32)

func (f EdgeHandlerFunc) HandleEdge(edge Edge, now uint32) {
	f(edge, now)
}

type multiEdgeHandler []EdgeHandler

func (meh multiEdgeHandler) HandleEdge(edge Edge, now uint32) {
	for i := range meh {
		meh[i].HandleEdge(edge, now)
	}
}

// MultiEdgeHandler accepts a list of EdgeHandlers and returns an object
// that also implements EdgeHandler. When HandleEdge is called against it,
// it calls HandleEdge against all the EdgeHandlers used to define it.
// In this way, you can effectively multiplex several decoders under
// a single IR receiver, or broadcast one emitter to several receivers.
// E.G.:
//
//	mult := irtag.MultiEdgeHandler(necDecoder, traceRecorder)
//	rxd := irtag.NewRxDevice(pin, mult)
func MultiEdgeHandler(handlers ...EdgeHandler) EdgeHandler {
	return multiEdgeHandler(handlers)
}
