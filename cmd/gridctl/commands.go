package main

import (
	"fmt"
	"grid-conversion-service/internal/domain"
	"grid-conversion-service/internal/services"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	ellipsoid string
	server    string
	seeds     string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "gridctl",
		Short: "Convert between latitude/longitude, UTM and local grids",
		Long: `gridctl converts coordinates in-process, or through a running
conversion service when --server is set.

Negative coordinates must follow "--", e.g. gridctl forward -- -33.87 151.21`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.ellipsoid, "ellipsoid", "23", "ellipsoid id or name")
	root.PersistentFlags().StringVar(&opts.server, "server", "", "base URL of a conversion service")
	root.PersistentFlags().StringVar(&opts.seeds, "seeds", "", "grid definitions JSON (default $SEED_PATH or data/seeds/grids.json)")

	root.AddCommand(
		newZoneCmd(),
		newForwardCmd(opts),
		newInverseCmd(opts),
		newGridCmd(opts),
		newEllipsoidsCmd(opts),
	)
	return root
}

func parseFloats(args []string, names ...string) ([]float64, error) {
	out := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", names[i], a)
		}
		out[i] = v
	}
	return out, nil
}

func newZoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zone LAT LON",
		Short: "Print the UTM zone designator for a point",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "LAT", "LON")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), services.ResolveZone(v[0], v[1]))
			return nil
		},
	}
}

func newForwardCmd(opts *rootOptions) *cobra.Command {
	var zone int

	cmd := &cobra.Command{
		Use:   "forward LAT LON",
		Short: "Project latitude/longitude to UTM",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "LAT", "LON")
			if err != nil {
				return err
			}
			conv, err := newConverter(opts.server, opts.seeds)
			if err != nil {
				return err
			}

			p, err := conv.UTMForward(cmd.Context(), opts.ellipsoid, v[0], v[1], zone)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %.3f %.3f\n", p.Zone, p.Easting, p.Northing)
			return nil
		},
	}
	cmd.Flags().IntVar(&zone, "zone", 0, "force this zone number (1-60)")
	return cmd
}

func newInverseCmd(opts *rootOptions) *cobra.Command {
	var zone string

	cmd := &cobra.Command{
		Use:   "inverse EASTING NORTHING --zone 32V",
		Short: "Convert a UTM position to latitude/longitude",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "EASTING", "NORTHING")
			if err != nil {
				return err
			}
			conv, err := newConverter(opts.server, opts.seeds)
			if err != nil {
				return err
			}

			c, err := conv.UTMInverse(cmd.Context(), opts.ellipsoid, v[0], v[1], zone)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.8f %.8f\n", c.Lat, c.Lon)
			return nil
		},
	}
	cmd.Flags().StringVar(&zone, "zone", "", "zone designator, e.g. 32V")
	_ = cmd.MarkFlagRequired("zone")
	return cmd
}

func newGridCmd(opts *rootOptions) *cobra.Command {
	var (
		grid    string
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "grid EASTING NORTHING",
		Short: "Convert a position on a local grid to latitude/longitude",
		Long: `Convert a position on a named local grid to latitude/longitude.
With --reverse the arguments are LAT LON and the output is easting/northing.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseFloats(args, "EASTING", "NORTHING")
			if reverse {
				v, err = parseFloats(args, "LAT", "LON")
			}
			if err != nil {
				return err
			}
			conv, err := newConverter(opts.server, opts.seeds)
			if err != nil {
				return err
			}

			if reverse {
				p, err := conv.GridFromGeodetic(cmd.Context(), grid, v[0], v[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.3f %.3f\n", p.Easting, p.Northing)
				return nil
			}

			c, err := conv.GridToGeodetic(cmd.Context(), grid, v[0], v[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%.8f %.8f\n", c.Lat, c.Lon)
			return nil
		},
	}
	cmd.Flags().StringVar(&grid, "grid", domain.BermudaNationalGridName, "grid name")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "convert latitude/longitude to the grid")
	return cmd
}

func newEllipsoidsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ellipsoids",
		Short: "List the reference ellipsoids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, err := newConverter(opts.server, opts.seeds)
			if err != nil {
				return err
			}

			all, err := conv.Ellipsoids(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tSEMI-MAJOR AXIS\tECC^2")
			for _, e := range all {
				fmt.Fprintf(tw, "%d\t%s\t%.0f\t%g\n", e.ID, e.Name, e.SemiMajorAxis, e.EccentricitySquared)
			}
			return tw.Flush()
		},
	}
}
