/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package cloud

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

const (
	hetznerLabel         = "managed-by"
	hetznerLabelValue    = "caretaker"
	hetznerLabelSelector = hetznerLabel + "=" + hetznerLabelValue
)

// Hetzner drives the Hetzner Cloud API through the official sdk.
type Hetzner struct {
	client     *hcloud.Client
	location   string
	serverType string
	image      string
}

func NewHetzner(token, location, serverType, image string, opts ...hcloud.ClientOption) *Hetzner {
	return &Hetzner{
		client:     hcloud.NewClient(append([]hcloud.ClientOption{hcloud.WithToken(token)}, opts...)...),
		location:   location,
		serverType: serverType,
		image:      image,
	}
}

func (h *Hetzner) List(ctx context.Context) ([]Server, error) {
	servers, err := h.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{
			LabelSelector: hetznerLabelSelector,
		},
	})
	if err != nil {
		return nil, mapHetznerErr(err)
	}

	out := make([]Server, 0, len(servers))
	for _, s := range servers {
		out = append(out, hetznerServer(s))
	}
	return out, nil
}

func (h *Hetzner) Spawn(ctx context.Context, sshKeys []string) (Created, error) {
	deploy, err := NewDeployKey()
	if err != nil {
		return Created{}, err
	}

	keys := make([]*hcloud.SSHKey, 0, len(sshKeys))
	for _, pub := range sshKeys {
		key, err := lookupOrCreateKey(ctx, pub, h.listKeys, h.createKey)
		if err != nil {
			return Created{}, err
		}
		keys = append(keys, key)
	}

	var created Created
	err = withDeployKey(ctx, keyHandle[*hcloud.SSHKey]{
		register: func(ctx context.Context) (*hcloud.SSHKey, error) {
			key, _, err := h.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
				Name:      "caretaker-deploy-key",
				PublicKey: deploy.AuthorizedKey,
			})
			return key, mapHetznerErr(err)
		},
		remove: func(ctx context.Context, key *hcloud.SSHKey) error {
			_, err := h.client.SSHKey.Delete(ctx, key)
			return mapHetznerErr(err)
		},
	}, func(deployKey *hcloud.SSHKey) error {
		res, _, err := h.client.Server.Create(ctx, hcloud.ServerCreateOpts{
			Name:       instanceName(),
			ServerType: &hcloud.ServerType{Name: h.serverType},
			Image:      &hcloud.Image{Name: h.image},
			Location:   &hcloud.Location{Name: h.location},
			SSHKeys:    append(keys, deployKey),
			Labels: map[string]string{
				hetznerLabel: hetznerLabelValue,
			},
		})
		if err != nil {
			return mapHetznerErr(err)
		}
		created = Created{
			ID:         strconv.FormatInt(res.Server.ID, 10),
			Credential: deploy,
		}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return created, nil
}

func (h *Hetzner) Kill(ctx context.Context, id string) error {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("parse server id %q: %w", id, err)
	}
	if _, _, err := h.client.Server.DeleteWithResult(ctx, &hcloud.Server{ID: numID}); err != nil {
		return mapHetznerErr(err)
	}
	return nil
}

func (h *Hetzner) WaitForIP(ctx context.Context, id string) (Server, error) {
	numID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return Server{}, fmt.Errorf("parse server id %q: %w", id, err)
	}
	return pollIP(ctx, ipPollInterval, func(ctx context.Context) (Server, error) {
		srv, _, err := h.client.Server.GetByID(ctx, numID)
		if err != nil {
			return Server{}, mapHetznerErr(err)
		}
		if srv == nil {
			return Server{}, ErrServerNotFound
		}
		return hetznerServer(srv), nil
	})
}

func (h *Hetzner) listKeys(ctx context.Context) (map[string]*hcloud.SSHKey, error) {
	keys, err := h.client.SSHKey.All(ctx)
	if err != nil {
		return nil, mapHetznerErr(err)
	}
	out := make(map[string]*hcloud.SSHKey, len(keys))
	for _, key := range keys {
		out[strings.TrimSpace(key.PublicKey)] = key
	}
	return out, nil
}

func (h *Hetzner) createKey(ctx context.Context, pub string) (*hcloud.SSHKey, error) {
	key, _, err := h.client.SSHKey.Create(ctx, hcloud.SSHKeyCreateOpts{
		Name:      "caretaker-key",
		PublicKey: pub,
	})
	if err != nil {
		return nil, mapHetznerErr(err)
	}
	return key, nil
}

func hetznerServer(s *hcloud.Server) Server {
	var v4, v6 netip.Addr
	if ip := s.PublicNet.IPv4.IP; len(ip) > 0 {
		if addr, ok := netip.AddrFromSlice(ip.To4()); ok {
			v4 = addr
		}
	}
	if ip := s.PublicNet.IPv6.IP; len(ip) > 0 {
		if addr, ok := netip.AddrFromSlice(ip); ok && !addr.IsUnspecified() {
			v6 = addr
		}
	}
	return Server{
		ID:      strconv.FormatInt(s.ID, 10),
		Name:    s.Name,
		Created: s.Created,
		IPv4:    v4,
		IPv6:    v6,
	}
}

func mapHetznerErr(err error) error {
	if err == nil {
		return nil
	}
	var herr hcloud.Error
	if errors.As(err, &herr) {
		switch herr.Code {
		case hcloud.ErrorCodeUnauthorized, hcloud.ErrorCodeForbidden:
			return ErrUnauthorized
		case hcloud.ErrorCodeNotFound:
			return ErrServerNotFound
		default:
			return &InvalidResponseError{Body: herr.Message}
		}
	}
	return &NetworkError{Err: err}
}
