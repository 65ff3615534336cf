// Package api provides the Coinglass open API (v4) REST client.
//
// Endpoint: https://open-api-v4.coinglass.com
//
// Every request carries the CG-API-KEY header. Responses are wrapped in a
// {"code", "msg", "data"} envelope where code "0" means success.
package api
