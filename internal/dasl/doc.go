// Package dasl compiles structured search criteria into the DASL query
// dialect understood by the Outlook store.
//
// Two emitters live here: MailFilter, which produces @SQL= filter strings
// for message table searches, and CalendarRange, which produces the Items
// restriction string used for recurrence-expanded calendar queries. Both are
// pure string builders; they never talk to the store.
package dasl
