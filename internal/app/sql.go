package app

// All statements use ? placeholders; the gateway rebinds them per driver.

// -----------------------------------------------------------------------------
// LOOKUPS (existence / uniqueness, run through Gateway.Count)
// -----------------------------------------------------------------------------

const (
	hotelByIDSQL       = `SELECT hotelID FROM Hotel WHERE hotelID = ?`
	roomInHotelSQL     = `SELECT roomNo FROM Room WHERE hotelID = ? AND roomNo = ?`
	cleanerBySSNSQL    = `SELECT SSN FROM Staff WHERE SSN = ? AND role = 'HouseCleaning'`
	managerBySSNSQL    = `SELECT SSN FROM Staff WHERE SSN = ? AND role = 'Manager'`
	customerByFirstSQL = `SELECT customerID FROM Customer WHERE fName = ?`
	customerByNameSQL  = `SELECT customerID FROM Customer WHERE fName = ? AND lName = ?`
	companyByIDSQL     = `SELECT cmpID FROM MaintenanceCompany WHERE cmpID = ?`
	companyByNameSQL   = `SELECT cmpID FROM MaintenanceCompany WHERE name = ?`
	repairForRoomSQL   = `SELECT rID FROM Repair WHERE rID = ? AND hotelID = ? AND roomNo = ?`
	requestOnDateSQL   = `SELECT reqID FROM Request WHERE repairID = ? AND requestDate = ?`
	roomBookedOnSQL    = `SELECT bID FROM Booking WHERE hotelID = ? AND roomNo = ? AND bookingDate = ?`
)

// -----------------------------------------------------------------------------
// ID ALLOCATION (max + 1, run through Gateway.Scalar)
// -----------------------------------------------------------------------------

const (
	maxCustomerIDSQL = `SELECT MAX(customerID) FROM Customer`
	maxCompanyIDSQL  = `SELECT MAX(cmpID) FROM MaintenanceCompany`
	maxRepairIDSQL   = `SELECT MAX(rID) FROM Repair`
	maxBookingIDSQL  = `SELECT MAX(bID) FROM Booking`
	maxAssignIDSQL   = `SELECT MAX(asgID) FROM Assigned`
	maxRequestIDSQL  = `SELECT MAX(reqID) FROM Request`
)

// -----------------------------------------------------------------------------
// INSERTS
// -----------------------------------------------------------------------------

const (
	insertCustomerSQL = `
INSERT INTO Customer
  (customerID, fName, lName, Address, phNo, DOB, gender)
VALUES
  (?, ?, ?, ?, ?, ?, ?)`

	insertRoomSQL = `
INSERT INTO Room
  (hotelID, roomNo, roomType)
VALUES
  (?, ?, ?)`

	insertCompanySQL = `
INSERT INTO MaintenanceCompany
  (cmpID, name, address, isCertified)
VALUES
  (?, ?, ?, ?)`

	insertRepairSQL = `
INSERT INTO Repair
  (rID, hotelID, roomNo, mCompany, repairDate, description, repairType)
VALUES
  (?, ?, ?, ?, ?, ?, ?)`

	insertBookingSQL = `
INSERT INTO Booking
  (bID, customer, hotelID, roomNo, bookingDate, noOfPeople, price)
VALUES
  (?, ?, ?, ?, ?, ?, ?)`

	insertAssignedSQL = `
INSERT INTO Assigned
  (asgID, staffID, hotelID, roomNo)
VALUES
  (?, ?, ?, ?)`

	insertRequestSQL = `
INSERT INTO Request
  (reqID, managerID, repairID, requestDate, description)
VALUES
  (?, ?, ?, ?, ?)`
)

// -----------------------------------------------------------------------------
// REPORTS (printed through Gateway.Query / QueryLimit)
// -----------------------------------------------------------------------------

// Rooms that have never been booked.
const availableRoomsSQL = `
SELECT r.roomNo, r.roomType
FROM Room r
WHERE r.hotelID = ?
  AND NOT EXISTS (
    SELECT 1 FROM Booking b
    WHERE b.hotelID = r.hotelID AND b.roomNo = r.roomNo
  )
ORDER BY r.roomNo`

const bookedRoomsSQL = `
SELECT DISTINCT b.roomNo
FROM Booking b
WHERE b.hotelID = ?
ORDER BY b.roomNo`

// Args: hotelID, week start, week end.
const weekBookingsSQL = `
SELECT b.bID, b.roomNo, b.bookingDate, b.customer, b.price
FROM Booking b
WHERE b.hotelID = ?
  AND b.bookingDate BETWEEN ? AND ?
ORDER BY b.bookingDate, b.roomNo`

const topRoomsByPriceSQL = `
SELECT r.hotelID, r.roomNo, r.roomType, b.price, b.bookingDate
FROM Room r
JOIN Booking b ON r.hotelID = b.hotelID AND r.roomNo = b.roomNo
WHERE b.bookingDate BETWEEN ? AND ?
ORDER BY b.price DESC, b.bookingDate, r.hotelID, r.roomNo`

const topCustomerBookingsSQL = `
SELECT c.fName, c.lName, b.price, b.bookingDate, b.hotelID
FROM Customer c
JOIN Booking b ON c.customerID = b.customer
WHERE c.fName = ? AND c.lName = ?
ORDER BY b.price DESC, b.bookingDate`

const customerTotalCostSQL = `
SELECT c.fName, c.lName, SUM(b.price) AS totalCost
FROM Customer c
JOIN Booking b ON c.customerID = b.customer
WHERE b.hotelID = ?
  AND c.fName = ? AND c.lName = ?
  AND b.bookingDate BETWEEN ? AND ?
GROUP BY c.customerID, c.fName, c.lName
ORDER BY c.customerID`

const companyRepairsSQL = `
SELECT r.rID, r.repairType, r.hotelID, r.roomNo
FROM Repair r
JOIN MaintenanceCompany m ON r.mCompany = m.cmpID
WHERE m.name = ?
ORDER BY r.rID`

const topCompaniesSQL = `
SELECT m.name, COUNT(r.rID) AS repairCount
FROM MaintenanceCompany m
LEFT JOIN Repair r ON r.mCompany = m.cmpID
GROUP BY m.cmpID, m.name
ORDER BY repairCount DESC, m.name`

// Formatted with the dialect's year expression twice.
const repairsPerYearSQL = `
SELECT %s AS repairYear, COUNT(*) AS repairCount
FROM Repair r
WHERE r.hotelID = ? AND r.roomNo = ?
GROUP BY %s
ORDER BY repairYear`
