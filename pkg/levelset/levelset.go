// Package levelset implements the isosurface (level-set) discretization
// kernel for a 2D triangular mesh: given a mesh and a scalar field
// sampled at its vertices, it rewrites the mesh so that the zero level
// set of the field becomes an explicit set of triangle edges, and
// labels every resulting triangle PLUS or MINUS by the sign of the
// field in its interior.
package levelset

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/chazu/isocut2d/pkg/meshmodel"
)

// Error kinds surfaced to the caller (spec.md §7). Each phase wraps one
// of these sentinels with a one-line diagnostic via %w; callers use
// errors.Is to distinguish them.
var (
	// ErrInputIllFormed means no snap/revert combination yields a
	// manifold zero locus.
	ErrInputIllFormed = errors.New("levelset: wrong input implicit function")

	// ErrResourceExhaustion means allocation of tmp, the edge hash, or
	// a new point failed.
	ErrResourceExhaustion = errors.New("levelset: resource exhaustion")

	// ErrTopologyInvariant means the labeller found both signs on one
	// triangle, or the splitter saw all three edges crossed.
	ErrTopologyInvariant = errors.New("levelset: topology invariant violated")

	// ErrNonManifoldResult means the manifold verifier rejected the
	// final mesh.
	ErrNonManifoldResult = errors.New("levelset: non-manifold result")
)

// Default thresholds suggested by spec.md §6.
const (
	DefaultEpsilon           = 1e-6
	DefaultEpsilonDegenerate = 1e-30
)

// Config bundles the kernel's tunables.
type Config struct {
	// Epsilon is the snap threshold (ε).
	Epsilon float64
	// EpsilonDegenerate is the degeneracy threshold (εd ≪ ε).
	EpsilonDegenerate float64
	// Verbosity mirrors the original `imprim`: |Verbosity| > 3 logs a
	// phase banner, |Verbosity| > 5 logs per-phase counts.
	Verbosity int
	// Logger receives banner/count output. Defaults to a logger on
	// os.Stdout with no prefix when nil.
	Logger *log.Logger
}

// DefaultConfig returns the suggested thresholds with verbosity off.
func DefaultConfig() Config {
	return Config{
		Epsilon:           DefaultEpsilon,
		EpsilonDegenerate: DefaultEpsilonDegenerate,
		Verbosity:         0,
	}
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(os.Stdout, "", 0)
}

// Result reports the counts spec.md §6 requires for logging: how many
// points were snapped, how many snaps were reverted, and how many
// triangles were split. Field is the (possibly grown) field the caller
// passed in, re-indexed against mesh's final point table: splitting
// appends a value for every new crossing point, so the slice the
// caller originally passed is too short to index past it.
type Result struct {
	Snapped  int
	Reverted int
	Splits   int
	Field    Field
}

// Field is a dense mapping from point id to scalar value, co-indexed
// with the mesh's point table.
type Field []float64

// sameSign implements spec.md §3's strict, overflow-safe sign
// predicate: zero values are sign-changing with respect to both signs.
func sameSign(a, b float64) bool {
	return (a < 0) == (b < 0) && a != 0 && b != 0
}

// Run executes the full pipeline of spec.md §4.7 in place on mesh and
// field: Snapper -> (rebuild adjacency) -> enumerator+hasher ->
// splitter -> labeller -> (rebuild adjacency) -> manifold verifier.
func Run(cfg Config, mesh *meshmodel.Mesh, field Field) (Result, error) {
	logger := cfg.logger()
	if abs(cfg.Verbosity) > 3 {
		logger.Println("  ** ISOSURFACE EXTRACTION")
	}

	var result Result

	// The snapper's manifold-ball check (§4.2) walks the existing
	// adjacency; build it now if the caller has not already done so.
	if mesh.Adja == nil {
		if err := mesh.BuildAdjacency(); err != nil {
			return result, fmt.Errorf("adjacency build (pre-snap): %w", err)
		}
	}

	ns, nc, err := snap(cfg, mesh, field)
	if err != nil {
		return result, fmt.Errorf("snap phase: %w", err)
	}
	result.Snapped, result.Reverted = ns, nc
	if abs(cfg.Verbosity) > 5 && ns+nc > 0 {
		logger.Printf("     %8d points snapped, %d corrected\n", ns, nc)
	}

	// Rebuild adjacency (snapping changes no topology, but this
	// matches the pipeline ordering of spec.md §4.7 and the C
	// original's hashTria call immediately after snapval), transfer
	// boundary edge references while it is available, then tear it
	// down: neither the enumerator nor the splitter consult it.
	if err := mesh.BuildAdjacency(); err != nil {
		return result, fmt.Errorf("adjacency build (post-snap): %w", err)
	}
	if err := mesh.TransferBoundaryEdges(); err != nil {
		return result, fmt.Errorf("transfer boundary edges: %w", err)
	}
	mesh.FreeAdjacency()

	field, ns2, err := cutTriangles(cfg, mesh, field)
	if err != nil {
		return result, fmt.Errorf("crossing/split phase: %w", err)
	}
	result.Splits = ns2
	result.Field = field
	if abs(cfg.Verbosity) > 5 && ns2 > 0 {
		logger.Printf("     %7d splitted\n", ns2)
	}

	if err := label(mesh, field); err != nil {
		return result, fmt.Errorf("label phase: %w", err)
	}

	if err := mesh.BuildAdjacency(); err != nil {
		return result, fmt.Errorf("adjacency build (post-split): %w", err)
	}

	if err := verifyManifold(mesh); err != nil {
		return result, fmt.Errorf("manifold verification: %w", err)
	}
	if abs(cfg.Verbosity) > 0 {
		logger.Println("  *** Manifold implicit surface.")
	}

	return result, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
