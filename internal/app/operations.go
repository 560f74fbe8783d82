package app

import (
	"context"
	"fmt"
	"strconv"

	"hoteldesk/internal/domain"
	"hoteldesk/internal/validate"
)

// Operation is one menu item: fields collected in order, then exactly one
// statement (plus ID allocation for inserts).
type Operation struct {
	ID     string // metrics/log label
	Title  string
	Fields []Field
	Submit func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error
}

// Operations returns the menu items in menu order, starting at 1.
func Operations() []Operation {
	return []Operation{
		addCustomer(),
		addRoom(),
		addMaintenanceCompany(),
		addRepair(),
		addBooking(),
		assignHouseCleaning(),
		raiseRepairRequest(),
		availableRooms(),
		bookedRooms(),
		weekBookings(),
		topRoomsByPrice(),
		topCustomerBookings(),
		customerTotalCost(),
		companyRepairs(),
		topCompanies(),
		repairsPerYear(),
	}
}

// nextID allocates max(existing)+1; an empty table starts at 1.
func nextID(ctx context.Context, gw domain.Gateway, maxSQL string) (int64, error) {
	s, err := gw.Scalar(ctx, maxSQL)
	if err != nil {
		return 0, err
	}
	if s == "" {
		return 1, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return 0, fmt.Errorf("allocate id from %q: %w", s, err)
		}
		n = int64(f)
	}
	return n + 1, nil
}

// ---- reusable fields ----

func rejectf(format string, names ...string) func(Values) string {
	return func(v Values) string {
		args := make([]any, len(names))
		for i, n := range names {
			args[i] = v.Str(n)
		}
		return fmt.Sprintf(format, args...)
	}
}

func hotelField() Field {
	return Field{
		Name: "hotelID", Prompt: "Please enter a hotelID", Kind: Number,
		Checks: []Check{{
			Query: hotelByIDSQL, Args: []string{"hotelID"}, Want: Exists,
			Reject: rejectf("Error! %s is not a valid hotelID in the Hotel table", "hotelID"),
		}},
	}
}

func roomField(prompt string) Field {
	return Field{
		Name: "roomNo", Label: "room number", Prompt: prompt, Kind: Number,
		Checks: []Check{{
			Query: roomInHotelSQL, Args: []string{"hotelID", "roomNo"}, Want: Exists,
			Reject: rejectf("Error! %s is not a valid room in hotelID %s", "roomNo", "hotelID"),
		}},
	}
}

func firstNameField() Field {
	return Field{
		Name: "fName", Label: "customer's first name", Prompt: "Please enter a customer's first name", Kind: Name,
		Checks: []Check{{
			Query: customerByFirstSQL, Args: []string{"fName"}, Want: Exists,
			Reject: rejectf("Error! No customer with first name %s exists", "fName"),
		}},
	}
}

// lastNameField checks the first/last pair against Customer.
func lastNameField(want Presence) Field {
	reject := rejectf("Error! No customer named %s %s exists", "fName", "lName")
	if want == Unique {
		reject = func(v Values) string {
			return fmt.Sprintf("Error! The name %s %s does not identify exactly one customer", v.Str("fName"), v.Str("lName"))
		}
	}
	return Field{
		Name: "lName", Label: "customer's last name", Prompt: "Please enter a customer's last name", Kind: Name,
		Checks: []Check{{Query: customerByNameSQL, Args: []string{"fName", "lName"}, Want: want, Reject: reject}},
	}
}

func dateField(name, prompt, notBefore string) Field {
	return Field{Name: name, Label: "date", Prompt: prompt, Kind: Date, NotBefore: notBefore}
}

func topKField(prompt string) Field {
	return Field{Name: "k", Label: "number to display", Prompt: prompt, Kind: Positive}
}

func printTotal(con *Console, n int) {
	con.Printf("Total rows: %d\n", n)
}

// ---- 1..7: inserts ----

func addCustomer() Operation {
	return Operation{
		ID: "add_customer", Title: "Add new customer",
		Fields: []Field{
			{Name: "fName", Label: "first name", Prompt: "Please enter the customer's first name", Kind: Name},
			{Name: "lName", Label: "last name", Prompt: "Please enter the customer's last name", Kind: Name},
			{Name: "address", Label: "address", Prompt: "Please enter the customer's address (30 characters or less)", Kind: Text},
			{Name: "phNo", Label: "phone number", Prompt: "Please enter the customer's phone number (digits only)", Kind: Digits},
			{Name: "DOB", Label: "date of birth", Prompt: "Please enter the customer's date of birth (month/day/year)", Kind: Date},
			{Name: "gender", Label: "gender", Prompt: "Please enter the customer's gender (Male, Female or Other)", Kind: Choice, Choices: []string{"Male", "Female", "Other"}},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			id, err := nextID(ctx, gw, maxCustomerIDSQL)
			if err != nil {
				return err
			}
			args := append([]any{id}, v.Args("fName", "lName", "address", "phNo", "DOB", "gender")...)
			if err := gw.Execute(ctx, insertCustomerSQL, args...); err != nil {
				return err
			}
			con.Printf("Customer %s %s was added with customerID %d\n", v.Str("fName"), v.Str("lName"), id)
			return nil
		},
	}
}

func addRoom() Operation {
	return Operation{
		ID: "add_room", Title: "Add new room",
		Fields: []Field{
			hotelField(),
			{
				Name: "roomNo", Label: "room number", Prompt: "Please enter the new room number", Kind: Number,
				Checks: []Check{{
					Query: roomInHotelSQL, Args: []string{"hotelID", "roomNo"}, Want: Absent,
					Reject: rejectf("Error! Room %s already exists in hotelID %s", "roomNo", "hotelID"),
				}},
			},
			{Name: "roomType", Label: "room type", Prompt: "Please enter the room type (30 characters or less)", Kind: Text},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			if err := gw.Execute(ctx, insertRoomSQL, v.Args("hotelID", "roomNo", "roomType")...); err != nil {
				return err
			}
			con.Printf("Room %s (%s) was added to hotelID %s\n", v.Str("roomNo"), v.Str("roomType"), v.Str("hotelID"))
			return nil
		},
	}
}

func addMaintenanceCompany() Operation {
	return Operation{
		ID: "add_maintenance_company", Title: "Add new maintenance company",
		Fields: []Field{
			{
				Name: "name", Label: "company name", Prompt: "Please enter the company name (30 characters or less)", Kind: Text,
				Checks: []Check{{
					Query: companyByNameSQL, Args: []string{"name"}, Want: Absent,
					Reject: rejectf("Error! A maintenance company named %s already exists", "name"),
				}},
			},
			{Name: "address", Label: "address", Prompt: "Please enter the company address (30 characters or less)", Kind: Text},
			{Name: "certified", Label: "certification", Prompt: "Is the company certified? (yes/no)", Kind: YesNo},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			id, err := nextID(ctx, gw, maxCompanyIDSQL)
			if err != nil {
				return err
			}
			args := append([]any{id}, v.Args("name", "address", "certified")...)
			if err := gw.Execute(ctx, insertCompanySQL, args...); err != nil {
				return err
			}
			con.Printf("Maintenance company %s was added with cmpID %d\n", v.Str("name"), id)
			return nil
		},
	}
}

func addRepair() Operation {
	return Operation{
		ID: "add_repair", Title: "Add new repair",
		Fields: []Field{
			hotelField(),
			roomField("Please enter the room number to repair"),
			{
				Name: "mCompany", Label: "company ID", Prompt: "Please enter the maintenance company ID", Kind: Number,
				Checks: []Check{{
					Query: companyByIDSQL, Args: []string{"mCompany"}, Want: Exists,
					Reject: rejectf("Error! %s is not a valid maintenance company ID", "mCompany"),
				}},
			},
			dateField("repairDate", "Please enter the repair date (month/day/year)", ""),
			{Name: "description", Label: "description", Prompt: "Briefly describe the repair (30 characters or less)", Kind: Text},
			{Name: "repairType", Label: "repair type", Prompt: "Please enter the repair type (30 characters or less)", Kind: Text},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			id, err := nextID(ctx, gw, maxRepairIDSQL)
			if err != nil {
				return err
			}
			args := append([]any{id}, v.Args("hotelID", "roomNo", "mCompany", "repairDate", "description", "repairType")...)
			if err := gw.Execute(ctx, insertRepairSQL, args...); err != nil {
				return err
			}
			con.Printf("Repair %d was scheduled for room %s at hotelID %s on %s\n", id, v.Str("roomNo"), v.Str("hotelID"), v.Str("repairDate"))
			return nil
		},
	}
}

func addBooking() Operation {
	return Operation{
		ID: "add_booking", Title: "Add new Booking",
		Fields: []Field{
			hotelField(),
			roomField("Please enter the room number to book"),
			firstNameField(),
			lastNameField(Unique),
			{
				Name: "bookingDate", Label: "date", Prompt: "Please enter the booking date (month/day/year)", Kind: Date,
				Checks: []Check{{
					Query: roomBookedOnSQL, Args: []string{"hotelID", "roomNo", "bookingDate"}, Want: Absent,
					Reject: rejectf("Error! Room %s at hotelID %s is already booked on %s", "roomNo", "hotelID", "bookingDate"),
				}},
			},
			{Name: "noOfPeople", Label: "number of people", Prompt: "Please enter the number of people", Kind: Positive},
			{Name: "price", Label: "price", Prompt: "Please enter the price", Kind: Number},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			customer, err := gw.Scalar(ctx, customerByNameSQL, v.Args("fName", "lName")...)
			if err != nil {
				return err
			}
			customerID, err := strconv.ParseInt(customer, 10, 64)
			if err != nil {
				return domain.Invalid("lName", "Error! Customer %s %s no longer exists", v.Str("fName"), v.Str("lName"))
			}
			id, err := nextID(ctx, gw, maxBookingIDSQL)
			if err != nil {
				return err
			}
			args := []any{id, customerID}
			args = append(args, v.Args("hotelID", "roomNo", "bookingDate", "noOfPeople", "price")...)
			if err := gw.Execute(ctx, insertBookingSQL, args...); err != nil {
				return err
			}
			con.Printf("Booking %d was created for customerID %d in room %s at hotelID %s on %s\n",
				id, customerID, v.Str("roomNo"), v.Str("hotelID"), v.Str("bookingDate"))
			return nil
		},
	}
}

func assignHouseCleaning() Operation {
	return Operation{
		ID: "assign_house_cleaning", Title: "Assign house cleaning staff to a room",
		Fields: []Field{
			{
				Name: "staffID", Label: "Staff SSN", Prompt: "Please enter a staff SSN to assign for cleaning", Kind: Number,
				Checks: []Check{{
					Query: cleanerBySSNSQL, Args: []string{"staffID"}, Want: Exists,
					Reject: rejectf("Error! %s is not a valid employee or this employee's role is not house cleaning", "staffID"),
				}},
			},
			hotelField(),
			roomField("Please enter the room number to be cleaned"),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			id, err := nextID(ctx, gw, maxAssignIDSQL)
			if err != nil {
				return err
			}
			args := append([]any{id}, v.Args("staffID", "hotelID", "roomNo")...)
			if err := gw.Execute(ctx, insertAssignedSQL, args...); err != nil {
				return err
			}
			con.Printf("StaffID %s was assigned to clean room number %s at hotelID %s. The asgID for the job is %d\n",
				v.Str("staffID"), v.Str("roomNo"), v.Str("hotelID"), id)
			return nil
		},
	}
}

func raiseRepairRequest() Operation {
	return Operation{
		ID: "raise_repair_request", Title: "Raise a repair request",
		Fields: []Field{
			hotelField(),
			{
				Name: "managerID", Label: "Staff SSN", Prompt: "Please enter a Staff SSN", Kind: Number,
				Checks: []Check{{
					Query: managerBySSNSQL, Args: []string{"managerID"}, Want: Exists,
					Reject: rejectf("Error! %s is not a valid employee or this employee's role is not Manager", "managerID"),
				}},
			},
			roomField("Please enter a room number"),
			{
				Name: "repairID", Label: "repairID", Prompt: "Please enter a repairID", Kind: Number,
				Checks: []Check{{
					Query: repairForRoomSQL, Args: []string{"repairID", "hotelID", "roomNo"}, Want: Exists,
					Reject: rejectf("Error! %s is not a valid repairID for room %s at hotelID %s", "repairID", "roomNo", "hotelID"),
				}},
			},
			{
				Name: "requestDate", Label: "date", Prompt: "Please enter the request date (month/day/year)", Kind: Date,
				Checks: []Check{{
					Query: requestOnDateSQL, Args: []string{"repairID", "requestDate"}, Want: Absent,
					Reject: rejectf("Error! repairID %s already has a request on %s", "repairID", "requestDate"),
				}},
			},
			{Name: "description", Label: "description", Prompt: "Briefly describe the issue to repair (30 characters or less)", Kind: Text},
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			id, err := nextID(ctx, gw, maxRequestIDSQL)
			if err != nil {
				return err
			}
			args := append([]any{id}, v.Args("managerID", "repairID", "requestDate", "description")...)
			if err := gw.Execute(ctx, insertRequestSQL, args...); err != nil {
				return err
			}
			con.Printf("Request for roomNo %s at hotelID %s was created by managerID %s. The repairID %s is requested for %s and has been assigned a requestID of %d\n",
				v.Str("roomNo"), v.Str("hotelID"), v.Str("managerID"), v.Str("repairID"), v.Str("requestDate"), id)
			return nil
		},
	}
}

// ---- 8..16: reports ----

func availableRooms() Operation {
	return Operation{
		ID: "available_rooms", Title: "Get number of available rooms",
		Fields: []Field{hotelField()},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			n, err := gw.Query(ctx, availableRoomsSQL, v.Arg("hotelID"))
			if err != nil {
				return err
			}
			printTotal(con, n)
			return nil
		},
	}
}

func bookedRooms() Operation {
	return Operation{
		ID: "booked_rooms", Title: "Get number of booked rooms",
		Fields: []Field{hotelField()},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			n, err := gw.Query(ctx, bookedRoomsSQL, v.Arg("hotelID"))
			if err != nil {
				return err
			}
			printTotal(con, n)
			return nil
		},
	}
}

func weekBookings() Operation {
	return Operation{
		ID: "week_bookings", Title: "Get hotel bookings for a week",
		Fields: []Field{
			hotelField(),
			dateField("date", "Please enter a date in the week (month/day/year)", ""),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			d, err := validate.ParseDate(v.Str("date"))
			if err != nil {
				return err
			}
			start, end := validate.WeekOf(d)
			n, err := gw.Query(ctx, weekBookingsSQL, v.Arg("hotelID"), validate.ISODate(start), validate.ISODate(end))
			if err != nil {
				return err
			}
			printTotal(con, n)
			return nil
		},
	}
}

func topRoomsByPrice() Operation {
	return Operation{
		ID: "top_rooms_by_price", Title: "Get top k rooms with highest price for a date range",
		Fields: []Field{
			dateField("start", "Please give me a start date (month/day/year)", ""),
			dateField("end", "Please give me an end date (month/day/year)", "start"),
			topKField("Please give me a number of rooms to display"),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			_, err := gw.QueryLimit(ctx, topRoomsByPriceSQL, int(v.Arg("k").(int64)), v.Args("start", "end")...)
			return err
		},
	}
}

func topCustomerBookings() Operation {
	return Operation{
		ID: "top_customer_bookings", Title: "Get top k highest booking price for a customer",
		Fields: []Field{
			firstNameField(),
			lastNameField(Exists),
			topKField("Please give me a number of bookings to display"),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			_, err := gw.QueryLimit(ctx, topCustomerBookingsSQL, int(v.Arg("k").(int64)), v.Args("fName", "lName")...)
			return err
		},
	}
}

func customerTotalCost() Operation {
	return Operation{
		ID: "customer_total_cost", Title: "Get customer total cost occurred for a given date range",
		Fields: []Field{
			hotelField(),
			firstNameField(),
			lastNameField(Exists),
			dateField("start", "Please give me a start date (month/day/year)", ""),
			dateField("end", "Please give me an end date (month/day/year)", "start"),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			n, err := gw.Query(ctx, customerTotalCostSQL, v.Args("hotelID", "fName", "lName", "start", "end")...)
			if err != nil {
				return err
			}
			if n == 0 {
				con.Printf("%s %s has no bookings at hotelID %s between %s and %s\n",
					v.Str("fName"), v.Str("lName"), v.Str("hotelID"), v.Str("start"), v.Str("end"))
			}
			return nil
		},
	}
}

func companyRepairs() Operation {
	return Operation{
		ID: "company_repairs", Title: "List the repairs made by maintenance company",
		Fields: []Field{{
			Name: "name", Label: "company name", Prompt: "Please enter a maintenance company name", Kind: Text,
			Checks: []Check{{
				Query: companyByNameSQL, Args: []string{"name"}, Want: Exists,
				Reject: rejectf("Error! No maintenance company named %s exists", "name"),
			}},
		}},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			n, err := gw.Query(ctx, companyRepairsSQL, v.Arg("name"))
			if err != nil {
				return err
			}
			printTotal(con, n)
			return nil
		},
	}
}

func topCompanies() Operation {
	return Operation{
		ID: "top_companies", Title: "Get top k maintenance companies based on repair count",
		Fields: []Field{topKField("Please give me a number of companies to display")},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			_, err := gw.QueryLimit(ctx, topCompaniesSQL, int(v.Arg("k").(int64)))
			return err
		},
	}
}

func repairsPerYear() Operation {
	return Operation{
		ID: "repairs_per_year", Title: "Get number of repairs occurred per year for a given hotel room",
		Fields: []Field{
			hotelField(),
			roomField("Please enter a room number"),
		},
		Submit: func(ctx context.Context, gw domain.Gateway, con *Console, v Values) error {
			year := gw.Year("r.repairDate")
			n, err := gw.Query(ctx, fmt.Sprintf(repairsPerYearSQL, year, year), v.Args("hotelID", "roomNo")...)
			if err != nil {
				return err
			}
			printTotal(con, n)
			return nil
		},
	}
}
