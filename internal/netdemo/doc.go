// Package netdemo is a small client/server demo for a networked game.
//
// A Server accepts websocket clients, gives each one a network ID, and
// relays spawn, despawn, transform and chat messages between them. Clients
// can also call named RPCs registered on the server. Each Client keeps an
// InterpolatedTransform per remote entity so positions can be rendered
// smoothly between network updates.
//
// Messages are JSON envelopes:
//
//	{"type":"transform","from":"<id>","payload":{...}}
package netdemo
