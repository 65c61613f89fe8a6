// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mails

import (
	"os/user"
	"strconv"
	"strings"
)

// LookupUID returns the numeric user id of a local user.
type LookupUID func(name string) (int, error)

// SystemUID looks up a user in the local user database.
func SystemUID(name string) (int, error) {
	u, err := user.Lookup(name)
	if err != nil {
		return 0, err
	}

	return strconv.Atoi(u.Uid)
}

// Qualifier turns local user names into addresses the remote service
// accepts.
type Qualifier struct {
	// Domain is appended to names without a domain.
	Domain string
	// Root receives the mail of system users, whose uid is below MinUserID.
	Root      string
	MinUserID int
	LookupUID LookupUID
}

// Qualify returns recipient unchanged if it already carries a domain or a
// display name. Otherwise system users are mapped to Root and every name
// then gets Domain appended.
func (q *Qualifier) Qualify(recipient string) string {
	if strings.ContainsAny(recipient, "@<") {
		return recipient
	}

	if q.isSystemUser(recipient) {
		recipient = q.Root

		if strings.ContainsAny(recipient, "@<") {
			return recipient
		}
	}

	if q.Domain == "" {
		return recipient
	}

	addr, err := NewAddress(recipient, q.Domain)
	if err != nil {
		return recipient
	}

	return addr.String()
}

func (q *Qualifier) isSystemUser(name string) bool {
	if q.Root == "" || q.MinUserID <= 0 || q.LookupUID == nil {
		return false
	}

	uid, err := q.LookupUID(name)
	return err == nil && uid < q.MinUserID
}
