package app_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoteldesk/internal/app"
	"hoteldesk/internal/storage/sqldb"
	"hoteldesk/internal/storage/sqldb/sqldbtest"
)

type fixture struct {
	gw  *sqldb.Gateway
	out *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	out := &bytes.Buffer{}
	gw := sqldbtest.OpenMemory(t, out)
	seed(t, gw)
	return &fixture{gw: gw, out: out}
}

func seed(t *testing.T, gw *sqldb.Gateway) {
	t.Helper()
	rows := []struct {
		q    string
		args []any
	}{
		{`INSERT INTO Staff (SSN, fName, lName, role) VALUES (?, ?, ?, ?)`, []any{100, "Mia", "Lopez", "Manager"}},
		{`INSERT INTO Staff (SSN, fName, lName, role) VALUES (?, ?, ?, ?)`, []any{200, "Sam", "Reed", "HouseCleaning"}},
		{`INSERT INTO Staff (SSN, fName, lName, role) VALUES (?, ?, ?, ?)`, []any{300, "Lee", "Park", "Receptionist"}},
		{`INSERT INTO Hotel (hotelID, address, manager) VALUES (?, ?, ?)`, []any{1, "Main St", 100}},
		{`INSERT INTO Hotel (hotelID, address, manager) VALUES (?, ?, ?)`, []any{2, "Harbor Rd", 100}},
		{`INSERT INTO Room (hotelID, roomNo, roomType) VALUES (?, ?, ?)`, []any{1, 101, "Suite"}},
		{`INSERT INTO Room (hotelID, roomNo, roomType) VALUES (?, ?, ?)`, []any{1, 102, "Double"}},
		{`INSERT INTO Room (hotelID, roomNo, roomType) VALUES (?, ?, ?)`, []any{1, 103, "Single"}},
		{`INSERT INTO Room (hotelID, roomNo, roomType) VALUES (?, ?, ?)`, []any{2, 201, "Suite"}},
		{`INSERT INTO Customer (customerID, fName, lName, Address, phNo, DOB, gender) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{1, "Ana", "Diaz", "12 Elm St", "5551234", "1990-04-02", "Female"}},
		{`INSERT INTO Customer (customerID, fName, lName, Address, phNo, DOB, gender) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{2, "Bo", "Chen", "3 Oak Ave", "5559876", "1985-11-30", "Male"}},
		{`INSERT INTO Customer (customerID, fName, lName, Address, phNo, DOB, gender) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{3, "John", "Smith", "1 Pine Rd", "5550001", "1970-01-01", "Male"}},
		{`INSERT INTO Customer (customerID, fName, lName, Address, phNo, DOB, gender) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{4, "John", "Smith", "9 Bay Ct", "5550002", "1975-06-15", "Male"}},
		{`INSERT INTO Booking (bID, customer, hotelID, roomNo, bookingDate, noOfPeople, price) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{1, 1, 1, 101, "2024-01-15", 2, 300}},
		{`INSERT INTO Booking (bID, customer, hotelID, roomNo, bookingDate, noOfPeople, price) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{2, 1, 1, 102, "2024-01-21", 1, 150}},
		{`INSERT INTO Booking (bID, customer, hotelID, roomNo, bookingDate, noOfPeople, price) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{3, 2, 1, 101, "2024-01-22", 2, 500}},
		{`INSERT INTO Booking (bID, customer, hotelID, roomNo, bookingDate, noOfPeople, price) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{4, 1, 2, 201, "2024-01-16", 2, 900}},
		{`INSERT INTO MaintenanceCompany (cmpID, name, address, isCertified) VALUES (?, ?, ?, ?)`, []any{1, "Fixit", "4 Mill Ln", true}},
		{`INSERT INTO MaintenanceCompany (cmpID, name, address, isCertified) VALUES (?, ?, ?, ?)`, []any{2, "Handy", "8 Dock St", false}},
		{`INSERT INTO MaintenanceCompany (cmpID, name, address, isCertified) VALUES (?, ?, ?, ?)`, []any{3, "Idle", "2 Quiet Way", true}},
		{`INSERT INTO Repair (rID, hotelID, roomNo, mCompany, repairDate, description, repairType) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{1, 1, 101, 1, "2022-03-01", "leak", "plumbing"}},
		{`INSERT INTO Repair (rID, hotelID, roomNo, mCompany, repairDate, description, repairType) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{2, 1, 101, 1, "2023-05-02", "light", "electrical"}},
		{`INSERT INTO Repair (rID, hotelID, roomNo, mCompany, repairDate, description, repairType) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{3, 1, 101, 2, "2023-07-09", "door", "carpentry"}},
		{`INSERT INTO Repair (rID, hotelID, roomNo, mCompany, repairDate, description, repairType) VALUES (?, ?, ?, ?, ?, ?, ?)`, []any{4, 1, 102, 1, "2023-01-01", "sink", "plumbing"}},
	}
	for _, r := range rows {
		require.NoError(t, gw.Execute(context.Background(), r.q, r.args...))
	}
}

// run feeds input lines to one operation; console and query output share f.out.
func (f *fixture) run(t *testing.T, id string, input ...string) string {
	t.Helper()
	f.out.Reset()
	con := app.NewConsole(strings.NewReader(strings.Join(input, "\n")+"\n"), f.out)
	require.NoError(t, app.NewEngine(f.gw, con).Run(context.Background(), opByID(t, id)))
	return f.out.String()
}

func (f *fixture) count(t *testing.T, q string, args ...any) int {
	t.Helper()
	n, err := f.gw.Count(context.Background(), q, args...)
	require.NoError(t, err)
	return n
}

func TestOperationsCoverMenu(t *testing.T) {
	ops := app.Operations()
	require.Len(t, ops, 16)
	seen := map[string]bool{}
	for _, op := range ops {
		assert.NotEmpty(t, op.Title)
		assert.NotNil(t, op.Submit, op.ID)
		assert.False(t, seen[op.ID], "duplicate id %s", op.ID)
		seen[op.ID] = true
	}
}

func TestAddCustomerRoundTrip(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "add_customer", "Zoe", "Kim", "77 Lake Dr", "0553333", "12/31/1999", "other")
	assert.Contains(t, got, "Customer Zoe Kim was added with customerID 5")

	f.out.Reset()
	n, err := f.gw.Query(context.Background(),
		`SELECT customerID, fName, lName, Address, phNo, DOB, gender FROM Customer WHERE customerID = ?`, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t,
		"customerID\tfName\tlName\tAddress\tphNo\tDOB\tgender\n5\tZoe\tKim\t77 Lake Dr\t0553333\t1999-12-31\tOther\n",
		f.out.String())
}

func TestAddCustomerKeepsAccentedAddress(t *testing.T) {
	f := newFixture(t)
	address := "Chemin des Pâquerettes, Genève"
	got := f.run(t, "add_customer", "Lea", "Roux", address, "0041223334455", "3/4/1988", "Female")
	assert.Contains(t, got, "Customer Lea Roux was added with customerID 5")
	assert.NotContains(t, got, "exceeds the character limit")
	assert.Equal(t, 1, f.count(t, `SELECT 1 FROM Customer WHERE customerID = 5 AND Address = ? AND phNo = ?`, address, "0041223334455"))
}

func TestAddRoomRejectsExistingRoom(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "add_room", "9", "1", "101", "104", "Double")
	assert.Contains(t, got, "Error! 9 is not a valid hotelID in the Hotel table")
	assert.Contains(t, got, "Error! Room 101 already exists in hotelID 1")
	assert.Contains(t, got, "Room 104 (Double) was added to hotelID 1")
	assert.Equal(t, 1, f.count(t, `SELECT 1 FROM Room WHERE hotelID = ? AND roomNo = ? AND roomType = ?`, 1, 104, "Double"))
}

func TestAddMaintenanceCompany(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "add_maintenance_company", "Fixit", "Pipes and Co", "5 Canal St", "yes")
	assert.Contains(t, got, "Error! A maintenance company named Fixit already exists")
	assert.Contains(t, got, "Maintenance company Pipes and Co was added with cmpID 4")
	assert.Equal(t, 1, f.count(t, `SELECT 1 FROM MaintenanceCompany WHERE cmpID = ? AND isCertified = ?`, 4, true))
}

func TestAddRepair(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "add_repair", "1", "201", "103", "9", "2", "6/1/2024", "broken window", "glazing")
	assert.Contains(t, got, "Error! 201 is not a valid room in hotelID 1")
	assert.Contains(t, got, "Error! 9 is not a valid maintenance company ID")
	assert.Contains(t, got, "Repair 5 was scheduled for room 103 at hotelID 1 on 6/1/2024")
	assert.Equal(t, 1, f.count(t, `SELECT 1 FROM Repair WHERE rID = 5 AND mCompany = 2 AND repairDate = ?`, "2024-06-01"))
}

func TestAddBooking(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "add_booking",
		"1", "101",
		"Ana", "Diaz",
		"01/15/2024", "01/16/2024",
		"0", "2",
		"250")
	assert.Contains(t, got, "Error! Room 101 at hotelID 1 is already booked on 01/15/2024")
	assert.Contains(t, got, "must be greater than zero")
	assert.Contains(t, got, "Booking 5 was created for customerID 1 in room 101 at hotelID 1 on 01/16/2024")
	assert.Equal(t, 1, f.count(t,
		`SELECT 1 FROM Booking WHERE bID = 5 AND customer = 1 AND bookingDate = ? AND price = 250`, "2024-01-16"))
	assert.Equal(t, 0, f.count(t, `SELECT 1 FROM Repair WHERE rID = 5`), "a booking never lands in Repair")
}

func TestAssignHouseCleaning(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "assign_house_cleaning", "100", "200", "2", "101", "201")
	assert.Contains(t, got, "Error! 100 is not a valid employee or this employee's role is not house cleaning")
	assert.Contains(t, got, "Error! 101 is not a valid room in hotelID 2")
	assert.Contains(t, got, "StaffID 200 was assigned to clean room number 201 at hotelID 2. The asgID for the job is 1")
	assert.Equal(t, 1, f.count(t, `SELECT 1 FROM Assigned WHERE asgID = 1 AND staffID = 200 AND hotelID = 2 AND roomNo = 201`))
}

func TestRaiseRepairRequest(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "raise_repair_request", "1", "200", "100", "101", "4", "1", "3/2/2022", "still dripping")
	assert.Contains(t, got, "Error! 200 is not a valid employee or this employee's role is not Manager")
	assert.Contains(t, got, "Error! 4 is not a valid repairID for room 101 at hotelID 1")
	assert.Contains(t, got, "has been assigned a requestID of 1")

	got = f.run(t, "raise_repair_request", "1", "100", "101", "1", "03/02/2022", "cancel")
	assert.Contains(t, got, "Error! repairID 1 already has a request on 03/02/2022")
	assert.Contains(t, got, "Operation cancelled.")
	assert.Equal(t, 1, f.count(t, `SELECT reqID FROM Request`))
}

func TestAvailableAndBookedRooms(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "available_rooms", "1")
	assert.Contains(t, got, "roomNo\troomType\n103\tSingle\n")
	assert.Contains(t, got, "Total rows: 1")

	got = f.run(t, "booked_rooms", "1")
	assert.Contains(t, got, "roomNo\n101\n102\n")
	assert.Contains(t, got, "Total rows: 2")
}

func TestWeekBookings(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "week_bookings", "1", "01/17/2024")
	assert.Contains(t, got, "bID\troomNo\tbookingDate\tcustomer\tprice\n")
	assert.Contains(t, got, "1\t101\t2024-01-15\t1\t300\n")
	assert.Contains(t, got, "2\t102\t2024-01-21\t1\t150\n")
	assert.NotContains(t, got, "2024-01-22")
	assert.Contains(t, got, "Total rows: 2")
}

func TestTopRoomsByPrice(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "top_rooms_by_price", "01/01/2024", "12/31/2023", "01/31/2024", "2")
	assert.Contains(t, got, "must not be before 01/01/2024")
	assert.Contains(t, got, "2\t201\tSuite\t900\t2024-01-16\n1\t101\tSuite\t500\t2024-01-22\n")
	assert.NotContains(t, got, "\t300\t")
}

func TestTopCustomerBookings(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "top_customer_bookings", "Zed", "Ana", "Chen", "Diaz", "1")
	assert.Contains(t, got, "Error! No customer with first name Zed exists")
	assert.Contains(t, got, "Error! No customer named Ana Chen exists")
	assert.Contains(t, got, "fName\tlName\tprice\tbookingDate\thotelID\nAna\tDiaz\t900\t2024-01-16\t2\n")
	assert.NotContains(t, got, "\t300\t")
}

func TestCustomerTotalCost(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "customer_total_cost", "1", "Ana", "Diaz", "01/01/2024", "01/31/2024")
	assert.Contains(t, got, "fName\tlName\ttotalCost\nAna\tDiaz\t450\n")

	got = f.run(t, "customer_total_cost", "2", "Bo", "Chen", "01/01/2024", "01/31/2024")
	assert.Contains(t, got, "Bo Chen has no bookings at hotelID 2 between 01/01/2024 and 01/31/2024")
}

func TestCompanyRepairsAndTopCompanies(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "company_repairs", "Nobody", "Fixit")
	assert.Contains(t, got, "Error! No maintenance company named Nobody exists")
	assert.Contains(t, got, "rID\trepairType\thotelID\troomNo\n1\tplumbing\t1\t101\n2\telectrical\t1\t101\n4\tplumbing\t1\t102\n")
	assert.Contains(t, got, "Total rows: 3")

	got = f.run(t, "top_companies", "2")
	assert.Contains(t, got, "name\trepairCount\nFixit\t3\nHandy\t1\n")
	assert.NotContains(t, got, "Idle")
}

func TestRepairsPerYear(t *testing.T) {
	f := newFixture(t)
	got := f.run(t, "repairs_per_year", "1", "101")
	assert.Contains(t, got, "repairYear\trepairCount\n2022\t1\n2023\t2\n")
	assert.Contains(t, got, "Total rows: 2")
}
