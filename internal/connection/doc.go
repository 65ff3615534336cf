// Package connection opens and closes the Coinglass WebSocket.
//
// A Socket starts its handshake in the background as soon as it is opened and
// can be closed at any point: closing while still connecting aborts the
// handshake, closing an open socket sends a normal close frame first. No
// application messages are sent or read.
//
// Endpoint: wss://open-ws.coinglass.com/ws-api?cg-api-key=<key>
package connection
