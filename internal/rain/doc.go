// Package rain implements the real-time parameter controller behind the rain
// overlay.
//
// Sparse user input (an intensity slider, pointer presses and drags, viewport
// resizes) is turned into a smoothly varying [RenderParams] value handed to a
// [Renderer] once per frame:
//
//   - [State]: the single mutable controller record
//   - [Pulse]: transient additive gain after any slider change
//   - [Phase]: decrease-hold and story modes as one tagged union
//   - [Aggregate]: pure per-frame parameter computation
//   - [Controller]: input handlers bound to a clock
//   - [Loop]: frame scheduling and listener lifecycle
//
// # Example
//
//	ctrl := rain.NewController(clock.NewMonotonic(), rain.DefaultParams())
//	loop := rain.NewLoop(ctrl, renderer, scheduler, bus, surface)
//	loop.Start()
//	defer loop.Stop()
//
// # Thread Safety
//
// Nothing here is safe for concurrent use. A controller and its loop belong
// to one host event loop; events and frames must be delivered on it.
package rain
