// Package hoodviz turns a Robinhood account's live holdings into a set of
// interactive charts.
//
// The package contains the core pipeline that sits between the brokerage API
// and the chart renderers: a time-boxed local cache of the last snapshot, a
// normalizer that maps the brokerage's loose records (stocks, ETPs, crypto)
// into one exact decimal schema, and a metrics engine that derives weights,
// returns and a diversification score from a snapshot.
//
// Fetching lives in the robinhood subpackage, rendering in the chart and
// report subpackages, and the CLI in cmd.
package hoodviz
