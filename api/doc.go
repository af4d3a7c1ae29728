// Package api provides the versioned function-table export that
// gates dependent modules behind a load-time version handshake.
//
// The handshake is a load-time contract, not a runtime state machine.
// The engine publishes a Table of bound scheduler functions under the
// well-known name APIName; a consumer acquires it once at startup,
// naming itself and the version it was built against:
//
//	api.Publish(api.APIName, api.Export(sched))
//
//	table, err := api.Acquire(api.APIName, "Coro::Event", api.APIVersion)
//	if err != nil {
//	    // fatal: the consumer must not proceed
//	}
//	table.Cede()
//
// A major-version mismatch fails with an error naming both versions
// and the consumer, so the operator knows exactly what to rebuild.
// This is the only hard-stop error in the engine; every scheduling
// operation behind the table succeeds given valid handles.
package api
