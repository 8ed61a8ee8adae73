// Command kernel-bench drives every leaf module of the native compute
// kernel end-to-end through pkg/abi, the same narrow surface a cgo or
// wasm host would call through. It mirrors fit-inspect's flags-plus-env
// CLI shape: a -module selector instead of a FIT file path, and
// KERNEL_LOG_LEVEL instead of a config file.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ripixel/fitglue-kernel/pkg/abi"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/crypto"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/geo"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/load"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/rank"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/ratelimit"
	"github.com/ripixel/fitglue-kernel/pkg/kernel/tu"
)

var modules = map[string]func(*slog.Logger, *tabwriter.Writer){
	"tu":        runTU,
	"load":      runLoad,
	"geo":       runGeo,
	"rank":      runRank,
	"ratelimit": runRateLimit,
	"crypto":    runCrypto,
}

func main() {
	module := flag.String("module", "all", "module to exercise: tu, load, geo, rank, ratelimit, crypto, or all")
	flag.Parse()

	logger := newLogger()
	w := tabwriter.NewWriter(os.Stdout, 0, 2, 2, ' ', 0)
	defer w.Flush()

	if *module == "all" {
		for _, name := range []string{"tu", "load", "geo", "rank", "ratelimit", "crypto"} {
			logger.Info("running module", "component", "kernel-bench", "module", name)
			modules[name](logger, w)
		}
		return
	}

	run, ok := modules[*module]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown module %q\n", *module)
		flag.Usage()
		os.Exit(1)
	}
	logger.Info("running module", "component", "kernel-bench", "module", *module)
	run(logger, w)
}

// runTU computes a known workout dosage: activations [50,0,30,70]
// (E=2,M=2), sets [3,4], bias [1.0,0.8] -> TU = 4.94, plus the
// cached-calculator path through pkg/abi.
func runTU(logger *slog.Logger, w *tabwriter.Writer) {
	h := abi.NewTUCalculator()
	defer abi.FreeTUCalculator(&h)

	total, err := abi.TUSimple(
		[]float32{50, 0, 30, 70},
		[]int32{3, 4},
		[]float32{1.0, 0.8},
		2, 2,
	)
	if err != nil {
		logger.Error("tu_calculate_simple failed", "component", "tu", "err", err)
		return
	}
	fmt.Fprintf(w, "tu.simple\t%.2f\n", total)

	if err := abi.TUAddExercise(h, "bench-press", []tu.MuscleActivation{
		{MuscleID: 1, Activation: 70}, {MuscleID: 2, Activation: 30},
	}); err != nil {
		logger.Error("tu_add_exercise failed", "component", "tu", "err", err)
		return
	}
	cached, err := abi.TUCalculateCached(h, []string{"bench-press"}, []int32{4})
	if err != nil {
		logger.Error("tu_calculate_cached failed", "component", "tu", "err", err)
		return
	}
	fmt.Fprintf(w, "tu.cached\t%.2f\n", cached)
}

// runLoad estimates a blended 1RM and a Strength-phase prescription
// through pkg/abi's registered handles.
func runLoad(logger *slog.Logger, w *tabwriter.Writer) {
	h, err := abi.EstimateOneRM(100, 5, 8.0, true)
	if err != nil {
		logger.Error("estimate_1rm failed", "component", "load", "err", err)
		return
	}
	defer abi.FreeOneRM(&h)

	result, err := abi.OneRMValue(h)
	if err != nil {
		logger.Error("one_rm_value failed", "component", "load", "err", err)
		return
	}
	fmt.Fprintf(w, "load.estimate_1rm\t%.2f\t%s\t%.0f\n", result.Estimated1RM, result.FormulaUsed, result.Confidence)

	ph, err := abi.CalculatePrescription(200, 5, 8.0, load.PhaseStrength, load.ExperienceIntermediate)
	if err != nil {
		logger.Error("calculate_load failed", "component", "load", "err", err)
		return
	}
	defer abi.FreePrescription(&ph)

	p, err := abi.PrescriptionValue(ph)
	if err != nil {
		logger.Error("prescription_value failed", "component", "load", "err", err)
		return
	}
	fmt.Fprintf(w, "load.prescription\t%.1fkg\t%s\t%ds rest\n", p.WeightKg, p.Tempo, p.RestSeconds)
}

// runGeo round-trips a San Francisco geohash and measures the
// 0,0 -> 0,1 haversine distance.
func runGeo(logger *slog.Logger, w *tabwriter.Writer) {
	hash, err := geo.Encode(37.7749, -122.4194, 9)
	if err != nil {
		logger.Error("geohash_encode failed", "component", "geo", "err", err)
		return
	}
	fmt.Fprintf(w, "geo.encode\t%s\n", hash)

	point, err := geo.Decode(hash)
	if err != nil {
		logger.Error("geohash_decode failed", "component", "geo", "err", err)
		return
	}
	fmt.Fprintf(w, "geo.decode\t%.4f,%.4f\t+/-%.6f,%.6f\n", point.Lat, point.Lng, point.LatError, point.LngError)

	d := geo.Haversine(0, 0, 0, 1)
	fmt.Fprintf(w, "geo.haversine\t%.0fm\n", d)
}

// runRank ranks scores [100,90,90,80] -> competition [1,2,2,4], dense
// [1,2,2,3], percentiles [100,33.33,33.33,0].
func runRank(logger *slog.Logger, w *tabwriter.Writer) {
	scores := []float64{100, 90, 90, 80}
	comp := rank.Calculate(scores)
	dense := rank.DenseRank(scores)
	pct := rank.Percentiles(scores)

	fmt.Fprintf(w, "rank.competition\t%v\n", comp)
	fmt.Fprintf(w, "rank.dense\t%v\n", dense)
	fmt.Fprintf(w, "rank.percentiles\t%v\n", pct)

	stats := rank.Statistics(scores)
	fmt.Fprintf(w, "rank.stats\tmean=%.2f\tstddev=%.2f\n", stats.Mean, stats.StdDev)
}

// runRateLimit drives a max=3, window=60s sliding window: four calls
// at the same instant -> allow, allow, allow, deny.
func runRateLimit(logger *slog.Logger, w *tabwriter.Writer) {
	h, err := abi.NewLimiter(ratelimit.KindSlidingWindow, ratelimit.Config{MaxRequests: 3, WindowSeconds: 60})
	if err != nil {
		logger.Error("new_limiter failed", "component", "ratelimit", "err", err)
		return
	}
	defer abi.FreeLimiter(&h)

	for i := 0; i < 4; i++ {
		d, err := abi.LimiterCheck(h, "bench-user")
		if err != nil {
			logger.Error("limiter_check failed", "component", "ratelimit", "err", err)
			return
		}
		fmt.Fprintf(w, "ratelimit.check[%d]\tallowed=%v\tremaining=%d\n", i, d.Allowed, d.Remaining)
	}
}

// runCrypto hashes a known vector and round-trips an Ed25519 signature
// through pkg/abi's key-pair handles.
func runCrypto(logger *slog.Logger, w *tabwriter.Writer) {
	digest := crypto.SHA256([]byte("abc"))
	fmt.Fprintf(w, "crypto.sha256(abc)\t%s\n", digest.Hex)

	h, err := abi.GenerateKeyPair()
	if err != nil {
		logger.Error("generate_keypair failed", "component", "crypto", "err", err)
		return
	}
	defer abi.FreeKeyPair(&h)

	fp, err := abi.KeyPairFingerprint(h)
	if err != nil {
		logger.Error("keypair_fingerprint failed", "component", "crypto", "err", err)
		return
	}
	fmt.Fprintf(w, "crypto.keypair.fingerprint\t%s\n", fp)

	sig, err := abi.KeyPairSign(h, []byte("bench message"))
	if err != nil {
		logger.Error("sign_message failed", "component", "crypto", "err", err)
		return
	}

	pub, err := abi.KeyPairPublicKey(h)
	if err != nil {
		logger.Error("keypair_public_key failed", "component", "crypto", "err", err)
		return
	}

	verify := crypto.VerifySignature(pub, []byte("bench message"), sig)
	fmt.Fprintf(w, "crypto.verify_signature\t%v\n", verify.Valid)
}
