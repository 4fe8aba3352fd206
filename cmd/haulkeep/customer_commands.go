package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ecmhaul/haulkeep"
)

func createCustomerAddCommand(hk command, f *CustomerAddFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new customer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.CustomerAdd(cmd, *f)
		},
	}
	cmd.Flags().StringVar(&f.Name, "name", "", "customer name (required)")
	cmd.Flags().StringVar(&f.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&f.Email, "email", "", "email address")
	cmd.Flags().StringVar(&f.Address, "address", "", "billing address")
	cmd.Flags().StringVar(&f.BoatMake, "boat-make", "", "boat make")
	cmd.Flags().StringVar(&f.BoatModel, "boat-model", "", "boat model")
	cmd.Flags().Float64Var(&f.BoatLength, "boat-length", 0, "boat length in feet")
	cmd.Flags().StringVar(&f.BoatName, "boat-name", "", "boat name")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		panic(err)
	}
	return cmd
}

func createCustomerListCommand(hk command, f *CustomerListFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all customers with their jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.CustomerList(cmd, *f)
		},
	}
	cmd.Flags().BoolVar(&f.JSON, "json", false, "print records as JSON")
	return cmd
}

func createCustomerFindCommand(hk command) *cobra.Command {
	return &cobra.Command{
		Use:   "find <customer-id>",
		Short: "Show a customer by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.CustomerFind(cmd, args[0])
		},
	}
}

func createCustomerSearchCommand(hk command) *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search customers by name, phone or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return hk.CustomerSearch(cmd, args[0])
		},
	}
}

// CustomerAdd inserts the customer and saves the store.
func (c *command) CustomerAdd(cmd *cobra.Command, f CustomerAddFlags) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	id, err := mgr.AddCustomer(haulkeep.Customer{
		Name:       f.Name,
		Phone:      f.Phone,
		Email:      f.Email,
		Address:    f.Address,
		BoatMake:   f.BoatMake,
		BoatModel:  f.BoatModel,
		BoatLength: f.BoatLength,
		BoatName:   f.BoatName,
	})
	if err != nil {
		return err
	}
	if err := mgr.Save(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Customer %q added with ID: %s\n", f.Name, id)
	return nil
}

// CustomerList prints every customer and their associated jobs.
func (c *command) CustomerList(cmd *cobra.Command, f CustomerListFlags) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	customers := mgr.Customers()
	if f.JSON {
		recs := make([]haulkeep.CustomerRecord, 0, len(customers))
		for i := range customers {
			recs = append(recs, customers[i].Record())
		}
		return printJSON(cmd, recs)
	}
	if len(customers) == 0 {
		cmd.Println("No customers found.")
		return nil
	}
	for i := range customers {
		cust := customers[i]
		cmd.Printf("\n%s\n", cust.String())
		jobs := mgr.JobsForCustomer(cust.ID)
		if len(jobs) > 0 {
			cmd.Println("  Associated Jobs:")
			for _, j := range jobs {
				cmd.Printf("    - Job ID: %s, Service: %s, Status: %s\n", j.ID, j.ServiceType, j.Status)
			}
		}
	}
	return nil
}

// CustomerFind shows one customer by exact id.
func (c *command) CustomerFind(cmd *cobra.Command, id string) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	cust, ok := mgr.FindCustomer(id)
	if !ok {
		return fmt.Errorf("customer %s not found", id)
	}
	cmd.Println(cust.String())
	return nil
}

// CustomerSearch prints all customers matching the term.
func (c *command) CustomerSearch(cmd *cobra.Command, term string) error {
	mgr, err := c.openManager(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = mgr.Close() }()
	results, err := mgr.SearchCustomers(term)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		cmd.Println("No customers found matching your search.")
		return nil
	}
	for i := range results {
		cmd.Printf("%d. %s (%s) - ID: %s\n", i+1, results[i].Name, results[i].Email, results[i].ID)
	}
	return nil
}
