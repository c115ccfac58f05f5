package main

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/domain/entities"
	"github.com/nayshasingh/Smart-Healthcare-Appointment-System/internal/token"
)

func printUser(w io.Writer, user *entities.User) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", user.UserID)
	fmt.Fprintf(tw, "Name\t%s\n", user.Name)
	fmt.Fprintf(tw, "Email\t%s\n", user.Email)
	fmt.Fprintf(tw, "Phone\t%s\n", user.Phone)
	fmt.Fprintf(tw, "Role\t%s\n", user.Role)
	_ = tw.Flush()
}

// printTokenInfo shows the timing claims only; expiry is never enforced here
func printTokenInfo(w io.Writer, info token.Info) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if !info.IssuedAt.IsZero() {
		fmt.Fprintf(tw, "Token issued\t%s\n", info.IssuedAt.UTC().Format(time.RFC3339))
	}
	if !info.ExpiresAt.IsZero() {
		fmt.Fprintf(tw, "Token expires\t%s\n", info.ExpiresAt.UTC().Format(time.RFC3339))
	}
	_ = tw.Flush()
}

func printSlots(w io.Writer, slots []entities.Availability) {
	if len(slots) == 0 {
		fmt.Fprintln(w, "No availability slots")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDOCTOR\tSTART\tEND\tAVAILABLE")
	for _, slot := range slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\n", slot.AvailabilityID, userName(slot.Doctor), slot.TimeSlotStart, slot.TimeSlotEnd, slot.Available)
	}
	_ = tw.Flush()
}

func printAppointments(w io.Writer, appts []entities.Appointment) {
	if len(appts) == 0 {
		fmt.Fprintln(w, "No appointments")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATIENT\tDOCTOR\tSTART\tEND\tSTATUS")
	for _, appt := range appts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", appt.AppointmentID, userName(appt.Patient), userName(appt.Doctor), appt.TimeSlotStart, appt.TimeSlotEnd, appt.Status)
	}
	_ = tw.Flush()
}

func printConsultation(w io.Writer, consultation *entities.Consultation) {
	if consultation == nil {
		fmt.Fprintln(w, "No consultation recorded")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\t%s\n", consultation.ConsultationID)
	fmt.Fprintf(tw, "Notes\t%s\n", consultation.Notes)
	fmt.Fprintf(tw, "Prescription\t%s\n", consultation.Prescription)
	_ = tw.Flush()
}

func userName(user *entities.User) string {
	if user == nil {
		return "-"
	}
	return user.Name
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
