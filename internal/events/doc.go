// Package events subscribes to the wallet backend's WebSocket event stream.
//
// The backend pushes a JSON frame whenever a device starts or stops waiting
// for a physical confirmation:
//
//	{"type":"device","deviceID":"abc","data":"confirmPending",
//	 "meta":{"title":"Set password","paired":false,"touchConfirm":true}}
//	{"type":"device","deviceID":"abc","data":"confirmDone"}
//
// The wizard maps confirmPending to its wait overlay and confirmDone to
// closing it.
//
//	sub, err := events.Subscribe(ctx, "ws://127.0.0.1:8082/api/events")
//	if err != nil {
//	    return err
//	}
//	defer sub.Close()
//
//	for ev := range sub.Events() {
//	    ...
//	}
//
// Malformed frames are logged and skipped. Keepalive pings are sent every
// pingPeriod.
package events
