package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/ecmhaul/haulkeep"
)

func createJobAddCommand(hk command, f *JobAddFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a new job for an existing customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.JobAdd(cmd, *f)
		},
	}
	cmd.Flags().StringVar(&f.CustomerID, "customer", "", "customer id (required)")
	cmd.Flags().StringVar(&f.Service, "service", "", "service type, e.g. Haul Out, Launch, Transport (required)")
	cmd.Flags().StringVar(&f.At, "at", "", `scheduled datetime "YYYY-MM-DD HH:MM" (required)`)
	cmd.Flags().StringVar(&f.Origin, "origin", "", "origin location (required)")
	cmd.Flags().StringVar(&f.Destination, "destination", "", "destination location (defaults to origin)")
	cmd.Flags().StringVar(&f.Price, "price", "0", "quoted price")
	cmd.Flags().StringVar(&f.Notes, "notes", "", "free-text notes")
	for _, name := range []string{"customer", "service", "at", "origin"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	return cmd
}

func createJobListCommand(hk command, f *JobListFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, soonest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.JobList(cmd, *f)
		},
	}
	cmd.Flags().StringVar(&f.Status, "status", "", "filter by exact status (unrecognized values are ignored)")
	cmd.Flags().BoolVar(&f.JSON, "json", false, "print records as JSON")
	return cmd
}

func createJobStatusCommand(hk command) *cobra.Command {
	return &cobra.Command{
		Use:   "status <job-id> <new-status>",
		Short: "Update a job's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.JobStatus(cmd, args[0], args[1])
		},
	}
}

// JobAdd schedules a job and saves the store.
func (c *command) JobAdd(cmd *cobra.Command, f JobAddFlags) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	price, err := haulkeep.ParsePrice(f.Price)
	if err != nil {
		return err
	}
	id, err := mgr.AddJob(haulkeep.JobSpec{
		CustomerID:  f.CustomerID,
		ServiceType: f.Service,
		ScheduledAt: f.At,
		Origin:      f.Origin,
		Destination: f.Destination,
		QuotedPrice: price,
		Notes:       f.Notes,
	})
	if err != nil {
		return err
	}
	if err := mgr.Save(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Job for customer %q added with ID: %s\n", mgr.CustomerName(f.CustomerID), id)
	return nil
}

// JobList prints jobs ascending by scheduled time, resolving customer names.
func (c *command) JobList(cmd *cobra.Command, f JobListFlags) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	jobs := mgr.ListJobs(f.Status)
	if f.JSON {
		recs := make([]haulkeep.JobRecord, 0, len(jobs))
		for i := range jobs {
			recs = append(recs, jobs[i].Record())
		}
		return printJSON(cmd, recs)
	}
	if len(jobs) == 0 {
		cmd.Println("No jobs found.")
		return nil
	}
	for i := range jobs {
		cmd.Printf("\n%s\n", jobs[i].String())
		cmd.Printf("  Customer Name: %s\n", mgr.CustomerName(jobs[i].CustomerID))
	}
	return nil
}

// JobStatus applies a status transition and saves when it is accepted.
func (c *command) JobStatus(cmd *cobra.Command, jobID, status string) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	ok, err := mgr.UpdateJobStatus(jobID, haulkeep.Status(status))
	if err != nil {
		return err
	}
	if !ok {
		cmd.Printf("Invalid status %q. Status not updated. Valid: %s\n",
			status, strings.Join(mgr.Statuses().Names(), ", "))
		return nil
	}
	if err := mgr.Save(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Job %s status updated to %q.\n", jobID, status)
	return nil
}
