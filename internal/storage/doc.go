// Package storage provides the notification audit journal.
//
// Every notification attempt (status change or operator diagnostic) can be
// appended here for later inspection (`homeworkbot history`). The journal is
// write-mostly: nothing in the poll loop reads it back, so a restart still
// starts with an empty notification gate.
package storage
