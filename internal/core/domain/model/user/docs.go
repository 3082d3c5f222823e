// Package user holds the User aggregate. Users own locations and send shipments;
// the user is identified by a unique, case-insensitive email.
package user
