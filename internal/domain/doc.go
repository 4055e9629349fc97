// Package domain models mandi (wholesale agricultural market) price data and
// the scoring heuristics behind harvest, market, and spoilage recommendations.
//
// # Data Source
//
// Prices follow the Agmarknet daily reporting format: one row per
// market × commodity × arrival date carrying minimum, maximum, and modal
// (most-traded) price in ₹ per quintal (100 kg). Because no live Agmarknet
// feed is wired in, the series is generated synthetically: a seeded
// generator applies a per-mandi multiplier, a sinusoidal day-of-year
// seasonality wave, and Gaussian noise to each crop's base price range, so
// every run with the same seed reproduces the same CSV byte-for-byte.
//
// # Scoring Conventions
//
// All engine scores are bounded to [0,1] and combine weighted component
// signals:
//
//	Harvest:  0.5·price seasonality + 0.3·weather + 0.2·soil readiness
//	Spoilage: humiditySens·humidity + 0.5·tempSens·temperature + 0.20·transit (+ storage penalty)
//	Mandi:    ranked by net profit = expected price − transport cost per quintal
//
// Tier thresholds are shared calibration: harvest confidence High ≥0.65 /
// Medium ≥0.45, spoilage risk HIGH ≥0.65 / MEDIUM ≥0.35. The rationale
// templates in explain.go band on the same thresholds and must move together
// with them.
//
// # Fallback Semantics
//
// The engines never fail: unknown crops, districts, markets, and storage
// types resolve to documented defaults (neutral sensitivities, the Pune
// coordinate, a flat ₹1800 price estimate, a +0.10 storage penalty), and
// degenerate price data yields a neutral 0.5 seasonality score. Advisory
// delivery is considered more valuable than strict failure signaling; the
// caller is expected to log these substitutions.
package domain
