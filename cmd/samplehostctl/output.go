package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"samplehost/internal/domain"
	"samplehost/internal/host"
	"samplehost/internal/infra/lv2"
	"samplehost/internal/infra/statestore"
	"samplehost/internal/ui/mapping"
)

func writeJSON(value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func printScalePoints(plugin lv2.Plugin, symbol string, points []domain.ScalePoint, jsonOutput bool) error {
	if jsonOutput {
		items := make([]map[string]any, 0, len(points))
		for _, point := range points {
			items = append(items, map[string]any{
				"label": point.Label(),
				"value": point.Value(),
			})
		}
		return writeJSON(map[string]any{
			"plugin":      plugin.URI,
			"port":        symbol,
			"scalePoints": items,
		})
	}
	fmt.Printf("plugin=%s port=%s scalePoints=%d\n", plugin.URI, symbol, len(points))
	for _, point := range points {
		fmt.Printf("%g\t%s\n", point.Value(), point.Label())
	}
	return nil
}

func printSampleRequests(requests []domain.SampleRequest, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"requests": mapping.MapSampleRequests(requests)})
	}
	if len(requests) == 0 {
		fmt.Println("no samples selected")
		return nil
	}
	for _, req := range requests {
		fmt.Printf("request=%s paths=%d\n", req.ID, len(req.Paths))
		for _, path := range req.Paths {
			fmt.Println(path)
		}
	}
	return nil
}

func printParticipants(infos []host.ParticipantInfo, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(map[string]any{"participants": mapping.MapParticipants(infos)})
	}
	for _, info := range infos {
		fmt.Printf("%s\t%s\t%s\n", info.Descriptor.Name, info.Descriptor.Version, info.State)
	}
	return nil
}

func printStateRecords(records []statestore.Record, jsonOutput bool) error {
	if jsonOutput {
		if records == nil {
			records = []statestore.Record{}
		}
		return writeJSON(map[string]any{"records": records})
	}
	for _, record := range records {
		active := "inactive"
		if record.Active {
			active = "active"
		}
		line := []string{record.Name, active}
		if record.UpdatedAt != "" {
			line = append(line, "updated="+record.UpdatedAt)
		}
		fmt.Println(strings.Join(line, "\t"))
	}
	return nil
}

// writeMetrics encodes every gathered family in the text exposition format.
func writeMetrics(w io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := enc.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
