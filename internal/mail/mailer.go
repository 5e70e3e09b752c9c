// Package mail sends reservation emails over SMTP.
package mail

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/oaktheatre/boxoffice/internal/config"
	"github.com/oaktheatre/boxoffice/internal/domain"
)

type Mailer struct {
	dialer  *gomail.Dialer
	from    string
	baseURL string
}

func NewMailer(conf *config.SMTPConfig, baseURL string) *Mailer {
	return &Mailer{
		dialer:  gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
		from:    conf.From,
		baseURL: baseURL,
	}
}

func (m *Mailer) SendConfirmation(reservation domain.Reservation) error {
	subject := fmt.Sprintf("Reservation %v confirmed", reservation.ReservationCode)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %v,\n\n", reservation.CustomerName)
	fmt.Fprintf(&b, "Your reservation is confirmed. Quote this code at the box office:\n\n")
	fmt.Fprintf(&b, "    %v\n\n", reservation.ReservationCode)

	if reservation.Performance != nil {
		p := reservation.Performance
		if p.Show != nil {
			fmt.Fprintf(&b, "%v\n", p.Show.Title)
		}
		fmt.Fprintf(&b, "%v\n", p.StartDateTime.Format("Monday 2 January 2006, 15:04"))
		if p.Venue != nil {
			fmt.Fprintf(&b, "%v\n", p.Venue.Name)
		}
		b.WriteString("\n")
	}

	for _, t := range reservation.ReservedTickets {
		fmt.Fprintf(&b, "%d x %v at %.2f\n", t.Quantity, t.TicketTypeNameAtReservation, t.PricePerItemAtReservation)
	}
	fmt.Fprintf(&b, "\nTotal to pay on collection: %.2f\n", reservation.TotalPrice)

	if reservation.CollectionDeadline != nil {
		fmt.Fprintf(&b, "\nPlease collect your tickets by %v or the reservation will lapse.\n",
			reservation.CollectionDeadline.Format(time.RFC1123))
	}

	fmt.Fprintf(&b, "\nManage your reservation: %v/reservations/%v\n", m.baseURL, reservation.ReservationCode)

	return m.send(reservation.CustomerEmail, subject, b.String())
}

func (m *Mailer) SendCancellation(reservation domain.Reservation) error {
	subject := fmt.Sprintf("Reservation %v cancelled", reservation.ReservationCode)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %v,\n\n", reservation.CustomerName)
	fmt.Fprintf(&b, "Your reservation %v has been cancelled and the seats released.\n",
		reservation.ReservationCode)

	return m.send(reservation.CustomerEmail, subject, b.String())
}

func (m *Mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("m.dialer.DialAndSend -> %w", err)
	}

	return nil
}
