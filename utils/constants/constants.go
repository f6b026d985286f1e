package constants

import "time"

// ZakatRate is the fixed levy applied to the zakatable amount.
const ZakatRate = 0.025

// UnknownValue is rendered wherever a derived or reported number is absent.
const UnknownValue = "—"

// ExportUnknownValue is the plain-text counterpart used in export artifacts.
const ExportUnknownValue = "N/A"

// ExtrapolationNote explains the one genuinely fragile estimate in the
// system. The extrapolated ratio rescales a partial-coverage weighted average
// to a full-portfolio figure, which assumes uncovered holdings behave like
// covered ones on average. It is an estimate, not a verified methodology, and
// must be shown to the user wherever the extrapolated ratio appears.
const ExtrapolationNote = "Estimated by scaling the covered-holdings average to the whole fund; assumes uncovered holdings behave like covered ones on average."

// GuideFallback is returned when the instructional-text endpoint cannot be
// reached within GuideTimeout.
const GuideFallback = "The usage guide is temporarily unavailable. Enter an as-of date and your tickers, then run the valuation to estimate zakat on liquid assets (cash, receivables and inventories)."

// GuideTimeout caps the instructional-text fetch.
const GuideTimeout = 8 * time.Second

// HealthTimeout caps the on-demand upstream connectivity probe.
const HealthTimeout = 5 * time.Second

// ValuationTimeout caps one round trip to the valuation service, which may
// fan out to several data providers per ticker upstream.
const ValuationTimeout = 120 * time.Second

// CacheTTL is how long a cached valuation response stays servable.
const CacheTTL = 24 * time.Hour

// MinColumnWidth and MaxColumnWidth document the range the UI clamps widths
// to. The registry stores whatever it is given; clamping is the caller's job.
const (
	MinColumnWidth = 96
	MaxColumnWidth = 320
)
