package dataset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"waste-route-service/internal/domain"
	"waste-route-service/internal/services"

	"gopkg.in/yaml.v3"
)

// Dataset is the static configuration a registry is built from: the area
// graph, the fleet and the pending waste tasks.
type Dataset struct {
	Depot        string    `yaml:"depot"`
	AverageSpeed float64   `yaml:"average_speed"`
	Areas        []string  `yaml:"areas"`
	Links        []Link    `yaml:"links"`
	Vehicles     []Vehicle `yaml:"vehicles"`
	Drivers      []Driver  `yaml:"drivers"`
	Tasks        []Task    `yaml:"tasks"`
}

type Link struct {
	From     string `yaml:"from"`
	To       string `yaml:"to"`
	Distance int    `yaml:"distance"`
}

type Vehicle struct {
	Model    string  `yaml:"model"`
	Capacity int     `yaml:"capacity"`
	Mileage  float64 `yaml:"mileage"`
}

type Driver struct {
	Name    string `yaml:"name"`
	Age     int    `yaml:"age"`
	Address string `yaml:"address"`
}

type Task struct {
	Area     string `yaml:"area"`
	Quantity int    `yaml:"quantity"`
}

// Parse decodes a YAML dataset. Unknown keys are rejected.
func Parse(r io.Reader) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("parse dataset: empty document")
		}
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	if len(ds.Areas) == 0 {
		return nil, errors.New("parse dataset: at least one area is required")
	}

	return &ds, nil
}

// LoadFile reads and parses the dataset at path.
func LoadFile(path string) (*Dataset, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset: read %q: %w", path, err)
	}

	ds, err := Parse(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("load dataset %q: %w", path, err)
	}
	return ds, nil
}

// Graph builds the immutable area graph.
func (ds *Dataset) Graph() (*domain.AreaGraph, error) {
	edges := make([]domain.Edge, 0, len(ds.Links))
	for _, l := range ds.Links {
		edges = append(edges, domain.Edge{From: l.From, To: l.To, Weight: l.Distance})
	}

	g, err := domain.NewAreaGraph(ds.Areas, edges)
	if err != nil {
		return nil, fmt.Errorf("dataset graph: %w", err)
	}
	return g, nil
}

// Build constructs a registry with the dataset's graph, fleet and tasks.
// Extra options are applied after the dataset's depot and speed.
func (ds *Dataset) Build(logger *slog.Logger, opts ...services.RegistryOption) (*services.Registry, error) {
	g, err := ds.Graph()
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	base := []services.RegistryOption{services.WithLogger(logger)}
	if ds.Depot != "" {
		base = append(base, services.WithDepot(ds.Depot))
	}
	if ds.AverageSpeed != 0 {
		base = append(base, services.WithAverageSpeed(ds.AverageSpeed))
	}

	r, err := services.NewRegistry(g, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}

	for i, v := range ds.Vehicles {
		if err := r.AddVehicle(domain.Vehicle{Model: v.Model, LoadCapacity: v.Capacity, Mileage: v.Mileage}); err != nil {
			return nil, fmt.Errorf("build registry: vehicle #%d: %w", i+1, err)
		}
	}
	for i, d := range ds.Drivers {
		if err := r.AddDriver(domain.Driver{Name: d.Name, Age: d.Age, Address: d.Address}); err != nil {
			return nil, fmt.Errorf("build registry: driver #%d: %w", i+1, err)
		}
	}
	for i, t := range ds.Tasks {
		if err := r.AddTask(domain.WasteTask{Area: t.Area, Quantity: t.Quantity}); err != nil {
			return nil, fmt.Errorf("build registry: task #%d: %w", i+1, err)
		}
	}

	return r, nil
}
