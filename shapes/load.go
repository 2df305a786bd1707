package shapes

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/goop/sim"
)

// LoadOBJ reads the vertex positions from a Wavefront OBJ file. Only "v"
// records matter here; faces, normals and materials are skipped since the
// simulation consumes point clouds, not meshes.
func LoadOBJ(path string) ([]sim.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapes: opening %s: %w", path, err)
	}
	defer f.Close()

	var pts []sim.Vec3
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 || fields[0] != "v" {
			continue
		}
		var v [3]float64
		for i := 0; i < 3; i++ {
			v[i], err = strconv.ParseFloat(fields[i+1], 32)
			if err != nil {
				return nil, fmt.Errorf("shapes: %s line %d: %w", path, line, err)
			}
		}
		pts = append(pts, sim.Vec3{X: float32(v[0]), Y: float32(v[1]), Z: float32(v[2])})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("shapes: reading %s: %w", path, err)
	}
	if len(pts) == 0 {
		return nil, fmt.Errorf("shapes: %s contains no vertices", path)
	}
	return pts, nil
}

// csvPoint is the row layout for CSV point clouds.
type csvPoint struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
	Z float64 `csv:"z"`
}

// LoadCSV reads a point cloud from a CSV file with x,y,z columns.
func LoadCSV(path string) ([]sim.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("shapes: opening %s: %w", path, err)
	}
	defer f.Close()

	var rows []csvPoint
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("shapes: parsing %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("shapes: %s contains no points", path)
	}

	pts := make([]sim.Vec3, len(rows))
	for i, r := range rows {
		pts[i] = sim.Vec3{X: float32(r.X), Y: float32(r.Y), Z: float32(r.Z)}
	}
	return pts, nil
}

// Load reads a point cloud by file extension (.obj or .csv).
func Load(path string) ([]sim.Vec3, error) {
	switch {
	case strings.HasSuffix(path, ".obj"):
		return LoadOBJ(path)
	case strings.HasSuffix(path, ".csv"):
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("shapes: unsupported point cloud format: %s", path)
	}
}

// FromFiles loads exactly three point clouds, normalizes them in a shared
// frame and assigns one target per particle.
func FromFiles(paths [sim.NumShapes]string, n int, seed int64) ([sim.NumShapes][]sim.Vec3, error) {
	var sets [sim.NumShapes][]sim.Vec3
	var clouds [sim.NumShapes][]sim.Vec3
	for i, path := range paths {
		pts, err := Load(path)
		if err != nil {
			return sets, err
		}
		clouds[i] = pts
	}
	Normalize(clouds[0], clouds[1], clouds[2])

	rng := rand.New(rand.NewSource(seed))
	for i := range sets {
		sets[i] = Assign(clouds[i], n, rng)
	}
	return sets, nil
}
