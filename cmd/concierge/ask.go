package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"concierge/internal/concierge"
	"concierge/pkg/geo"
	"concierge/pkg/kmlexport"
)

func askCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Resolve a question to shrines and courses",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			svc, release, err := newService(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			shrine, _ := cmd.Flags().GetString("shrine")
			answer := svc.Ask(ctx, concierge.Request{Query: strings.Join(args, " "), ShrineName: shrine})
			return printAnswer(cmd, answer, answer.Message)
		},
	}
	cmd.Flags().String("shrine", "", "preferred shrine name")
	cmd.Flags().Bool("json", false, "print the full JSON answer")
	return cmd
}

func routeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route [wish]",
		Short: "Plan a short shrine route",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
			defer cancel()

			svc, release, err := newService(ctx, cfg)
			if err != nil {
				return err
			}
			defer release()

			req := concierge.Request{Query: strings.Join(args, " ")}
			req.Location, _ = cmd.Flags().GetString("from")
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
				lat, _ := cmd.Flags().GetFloat64("lat")
				lon, _ := cmd.Flags().GetFloat64("lon")
				req.Coordinate = &geo.Coordinate{Lat: lat, Lon: lon}
			}

			answer := svc.Route(ctx, req)
			if path, _ := cmd.Flags().GetString("kml"); path != "" && answer.OK {
				if err := writeKML(path, answer); err != nil {
					return err
				}
				log.WithField("path", path).Info("wrote route kml")
			}
			return printAnswer(cmd, answer, answer.Message)
		},
	}
	cmd.Flags().String("from", "", "starting area or address")
	cmd.Flags().Float64("lat", 0, "starting latitude")
	cmd.Flags().Float64("lon", 0, "starting longitude")
	cmd.Flags().String("kml", "", "also write the route as KML to this file")
	cmd.Flags().Bool("json", false, "print the full JSON answer")
	return cmd
}

func writeKML(path string, answer concierge.RouteAnswer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stops := make([]kmlexport.Stop, 0, len(answer.Route))
	for _, s := range answer.Route {
		stops = append(stops, kmlexport.Stop{Name: s.Name, Description: s.Address, Coordinate: s.Coordinate})
	}
	return kmlexport.Write(f, "神社めぐり", stops)
}

func printAnswer(cmd *cobra.Command, answer any, message string) error {
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(answer)
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), message)
	return err
}
