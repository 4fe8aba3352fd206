package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ecmhaul/haulkeep"
)

// menuSession is the interactive text shell over a loaded manager. It only
// collects input and renders results; all record logic lives behind the
// manager operations.
type menuSession struct {
	mgr *haulkeep.Manager
	in  *bufio.Scanner
	out io.Writer
}

// runMenu drives the menu loop until the operator exits or input ends.
func runMenu(ctx context.Context, mgr *haulkeep.Manager, in io.Reader, out io.Writer) error {
	s := &menuSession{mgr: mgr, in: bufio.NewScanner(in), out: out}
	for {
		s.printf("\n===== Boat Hauling Service Menu =====\n")
		s.printf("1. Add New Customer\n")
		s.printf("2. List All Customers\n")
		s.printf("3. Find Customer\n")
		s.printf("4. Add New Job\n")
		s.printf("5. List Jobs\n")
		s.printf("6. Update Job Status\n")
		s.printf("7. Save All Data\n")
		s.printf("8. Save and Exit\n")
		choice, ok := s.prompt("Enter your choice: ")
		if !ok {
			return nil
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.addCustomer()
		case "2":
			s.listCustomers()
		case "3":
			s.findCustomer()
		case "4":
			s.addJob()
		case "5":
			s.listJobs()
		case "6":
			s.updateJobStatus()
		case "7":
			s.save(ctx)
		case "8":
			s.save(ctx)
			s.printf("Exiting application. Goodbye!\n")
			return nil
		default:
			s.printf("Invalid choice. Please try again.\n")
		}
	}
}

func (s *menuSession) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// prompt reads one line; ok is false when input is exhausted.
func (s *menuSession) prompt(label string) (string, bool) {
	s.printf("%s", label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *menuSession) addCustomer() (string, bool) {
	s.printf("\n--- Add New Customer ---\n")
	name, ok := s.prompt("Customer Name: ")
	if !ok || strings.TrimSpace(name) == "" {
		s.printf("Customer name is required.\n")
		return "", false
	}
	phone, _ := s.prompt("Phone Number: ")
	email, _ := s.prompt("Email Address: ")
	address, _ := s.prompt("Billing Address: ")
	boatMake, _ := s.prompt("Boat Make: ")
	boatModel, _ := s.prompt("Boat Model: ")
	lengthStr, _ := s.prompt("Boat Length (ft, blank if unknown): ")
	boatName, _ := s.prompt("Boat Name (optional): ")

	var length float64
	if strings.TrimSpace(lengthStr) != "" {
		if _, err := fmt.Sscanf(strings.TrimSpace(lengthStr), "%g", &length); err != nil {
			s.printf("Ignoring unreadable boat length %q.\n", lengthStr)
			length = 0
		}
	}
	id, err := s.mgr.AddCustomer(haulkeep.Customer{
		Name:       name,
		Phone:      phone,
		Email:      email,
		Address:    address,
		BoatMake:   boatMake,
		BoatModel:  boatModel,
		BoatLength: length,
		BoatName:   boatName,
	})
	if err != nil {
		s.printf("Error adding customer: %v\n", err)
		return "", false
	}
	s.printf("\nCustomer %q added successfully with ID: %s\n", name, id)
	return id, true
}

func (s *menuSession) listCustomers() {
	s.printf("\n--- List of Customers ---\n")
	customers := s.mgr.Customers()
	if len(customers) == 0 {
		s.printf("No customers found.\n")
		return
	}
	for i := range customers {
		s.printf("\n%s\n", customers[i].String())
		jobs := s.mgr.JobsForCustomer(customers[i].ID)
		if len(jobs) > 0 {
			s.printf("  Associated Jobs:\n")
			for _, j := range jobs {
				s.printf("    - Job ID: %s, Service: %s, Status: %s\n", j.ID, j.ServiceType, j.Status)
			}
		}
	}
}

// findCustomer searches and, on a unique hit, shows the full record.
func (s *menuSession) findCustomer() *haulkeep.Customer {
	s.printf("\n--- Find Customer ---\n")
	term, ok := s.prompt("Enter Customer Name, Phone, or Email to search: ")
	if !ok {
		return nil
	}
	results, err := s.mgr.SearchCustomers(term)
	if err != nil {
		s.printf("Search term cannot be empty.\n")
		return nil
	}
	switch len(results) {
	case 0:
		s.printf("No customers found matching your search.\n")
		return nil
	case 1:
		s.printf("Found 1 customer:\n%s\n", results[0].String())
		return &results[0]
	default:
		s.printf("Found multiple customers:\n")
		for i := range results {
			s.printf("%d. %s (%s) - ID: %s\n", i+1, results[i].Name, results[i].Email, results[i].ID)
		}
		return nil
	}
}

func (s *menuSession) addJob() {
	s.printf("\n--- Add New Job ---\n")
	var customerID string
	if len(s.mgr.Customers()) == 0 {
		s.printf("No customers available. Please add a customer first.\n")
		answer, ok := s.prompt("Add a new customer now? (y/n): ")
		if !ok || strings.ToLower(strings.TrimSpace(answer)) != "y" {
			return
		}
		id, added := s.addCustomer()
		if !added {
			return
		}
		customerID = id
	} else {
		input, ok := s.prompt("Enter Customer ID (or type 'search' to find a customer): ")
		if !ok {
			return
		}
		if strings.EqualFold(strings.TrimSpace(input), "search") {
			cust := s.findCustomer()
			if cust == nil {
				s.printf("No customer selected. Aborting job creation.\n")
				return
			}
			customerID = cust.ID
			s.printf("Selected customer: %s (ID: %s)\n", cust.Name, cust.ID)
		} else {
			customerID = strings.TrimSpace(input)
			if _, ok := s.mgr.FindCustomer(customerID); !ok {
				s.printf("Customer ID not found.\n")
				return
			}
		}
	}

	service, _ := s.prompt("Service Type (e.g., Haul Out, Launch, Transport): ")
	at, _ := s.prompt("Scheduled Date and Time (YYYY-MM-DD HH:MM): ")
	origin, _ := s.prompt("Origin Location (e.g., Marina name, address): ")
	destination, _ := s.prompt("Destination Location (if different, else leave blank): ")
	priceStr, _ := s.prompt("Quoted Price: ")
	notes, _ := s.prompt("Notes (optional): ")

	price, err := haulkeep.ParsePrice(priceStr)
	if err != nil {
		s.printf("Error creating job: %v\n", err)
		return
	}
	id, err := s.mgr.AddJob(haulkeep.JobSpec{
		CustomerID:  customerID,
		ServiceType: service,
		ScheduledAt: at,
		Origin:      origin,
		Destination: destination,
		QuotedPrice: price,
		Notes:       notes,
	})
	if err != nil {
		s.printf("Error creating job: %v\n", err)
		return
	}
	s.printf("\nJob for customer %q added successfully with ID: %s\n", s.mgr.CustomerName(customerID), id)
}

func (s *menuSession) listJobs() {
	s.printf("\n--- List of Jobs ---\n")
	statuses := strings.Join(s.mgr.Statuses().Names(), ", ")
	filter, ok := s.prompt(fmt.Sprintf("Filter by status? [%s] (Leave blank for all): ", statuses))
	if !ok {
		return
	}
	filter = strings.TrimSpace(filter)
	if filter != "" && !s.mgr.Statuses().Contains(haulkeep.Status(filter)) {
		s.printf("Invalid status. Showing all jobs.\n")
	}
	jobs := s.mgr.ListJobs(filter)
	if len(jobs) == 0 {
		s.printf("No jobs found.\n")
		return
	}
	for i := range jobs {
		s.printf("\n%s\n", jobs[i].String())
		s.printf("  Customer Name: %s\n", s.mgr.CustomerName(jobs[i].CustomerID))
	}
}

func (s *menuSession) updateJobStatus() {
	s.printf("\n--- Update Job Status ---\n")
	jobID, ok := s.prompt("Enter Job ID to update: ")
	if !ok {
		return
	}
	jobID = strings.TrimSpace(jobID)
	j, found := s.mgr.FindJob(jobID)
	if !found {
		s.printf("Job ID not found.\n")
		return
	}
	s.printf("Current status for Job %s: %s\n", jobID, j.Status)
	s.printf("Available statuses: %s\n", strings.Join(s.mgr.Statuses().Names(), ", "))
	newStatus, ok := s.prompt("Enter new status: ")
	if !ok {
		return
	}
	newStatus = strings.TrimSpace(newStatus)
	accepted, err := s.mgr.UpdateJobStatus(jobID, haulkeep.Status(newStatus))
	if err != nil {
		s.printf("Job ID not found.\n")
		return
	}
	if accepted {
		s.printf("Job %s status updated to %q.\n", jobID, newStatus)
	} else {
		s.printf("Invalid status %q. Status not updated.\n", newStatus)
	}
}

func (s *menuSession) save(ctx context.Context) {
	if err := s.mgr.Save(ctx); err != nil {
		s.printf("Error: could not save data: %v\n", err)
		return
	}
	s.printf("Data saved successfully.\n")
}
