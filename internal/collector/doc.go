// Package collector downloads futures series from Coinglass and stores them.
//
// For every configured symbol the collector fetches open interest, funding
// rate, top-account long/short ratio and liquidation history, then writes
// each series to the store. A failing symbol is logged and skipped; the run
// continues with the next one.
package collector
