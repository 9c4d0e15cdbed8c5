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
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/digitalocean/godo"
)

const doTag = "caretaker"

// DigitalOcean drives the DigitalOcean API through godo.
type DigitalOcean struct {
	client *godo.Client
	region string
	size   string
	image  string
}

func NewDigitalOcean(token, region, size, image string) *DigitalOcean {
	return &DigitalOcean{
		client: godo.NewFromToken(token),
		region: region,
		size:   size,
		image:  image,
	}
}

func (d *DigitalOcean) List(ctx context.Context) ([]Server, error) {
	droplets, _, err := d.client.Droplets.ListByTag(ctx, doTag, &godo.ListOptions{PerPage: 200})
	if err != nil {
		return nil, mapGodoErr(err)
	}

	out := make([]Server, 0, len(droplets))
	for _, droplet := range droplets {
		out = append(out, godoServer(&droplet))
	}
	return out, nil
}

func (d *DigitalOcean) Spawn(ctx context.Context, sshKeys []string) (Created, error) {
	deploy, err := NewDeployKey()
	if err != nil {
		return Created{}, err
	}

	keyIDs := make([]godo.DropletCreateSSHKey, 0, len(sshKeys)+1)
	for _, pub := range sshKeys {
		id, err := lookupOrCreateKey(ctx, pub, d.listKeys, d.createKey)
		if err != nil {
			return Created{}, err
		}
		keyIDs = append(keyIDs, godo.DropletCreateSSHKey{ID: id})
	}

	var created Created
	err = withDeployKey(ctx, keyHandle[int]{
		register: func(ctx context.Context) (int, error) {
			key, _, err := d.client.Keys.Create(ctx, &godo.KeyCreateRequest{
				Name:      "caretaker-deploy-key",
				PublicKey: deploy.AuthorizedKey,
			})
			if err != nil {
				return 0, mapGodoErr(err)
			}
			return key.ID, nil
		},
		remove: func(ctx context.Context, id int) error {
			_, err := d.client.Keys.DeleteByID(ctx, id)
			return mapGodoErr(err)
		},
	}, func(deployKeyID int) error {
		droplet, _, err := d.client.Droplets.Create(ctx, &godo.DropletCreateRequest{
			Name:    instanceName(),
			Region:  d.region,
			Size:    d.size,
			Image:   godo.DropletCreateImage{Slug: d.image},
			SSHKeys: append(keyIDs, godo.DropletCreateSSHKey{ID: deployKeyID}),
			IPv6:    true,
			Tags:    []string{doTag},
		})
		if err != nil {
			return mapGodoErr(err)
		}
		created = Created{
			ID:         strconv.Itoa(droplet.ID),
			Credential: deploy,
		}
		return nil
	})
	if err != nil {
		return Created{}, err
	}
	return created, nil
}

func (d *DigitalOcean) Kill(ctx context.Context, id string) error {
	numID, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("parse server id %q: %w", id, err)
	}
	if _, err := d.client.Droplets.Delete(ctx, numID); err != nil {
		return mapGodoErr(err)
	}
	return nil
}

func (d *DigitalOcean) WaitForIP(ctx context.Context, id string) (Server, error) {
	numID, err := strconv.Atoi(id)
	if err != nil {
		return Server{}, fmt.Errorf("parse server id %q: %w", id, err)
	}
	return pollIP(ctx, ipPollInterval, func(ctx context.Context) (Server, error) {
		droplet, _, err := d.client.Droplets.Get(ctx, numID)
		if err != nil {
			return Server{}, mapGodoErr(err)
		}
		if droplet == nil {
			return Server{}, ErrServerNotFound
		}
		return godoServer(droplet), nil
	})
}

func (d *DigitalOcean) listKeys(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int)
	opt := &godo.ListOptions{PerPage: 200}
	for {
		keys, resp, err := d.client.Keys.List(ctx, opt)
		if err != nil {
			return nil, mapGodoErr(err)
		}
		for _, key := range keys {
			out[strings.TrimSpace(key.PublicKey)] = key.ID
		}
		if resp.Links == nil || resp.Links.IsLastPage() {
			return out, nil
		}
		page, err := resp.Links.CurrentPage()
		if err != nil {
			return nil, &InvalidResponseError{Body: err.Error()}
		}
		opt.Page = page + 1
	}
}

func (d *DigitalOcean) createKey(ctx context.Context, pub string) (int, error) {
	key, _, err := d.client.Keys.Create(ctx, &godo.KeyCreateRequest{
		Name:      "caretaker-key",
		PublicKey: pub,
	})
	if err != nil {
		return 0, mapGodoErr(err)
	}
	return key.ID, nil
}

func godoServer(droplet *godo.Droplet) Server {
	var v4, v6 netip.Addr
	if ip, err := droplet.PublicIPv4(); err == nil && ip != "" {
		if addr, err := netip.ParseAddr(ip); err == nil {
			v4 = addr
		}
	}
	if ip, err := droplet.PublicIPv6(); err == nil && ip != "" {
		if addr, err := netip.ParseAddr(ip); err == nil {
			v6 = addr
		}
	}
	created, _ := time.Parse(time.RFC3339, droplet.Created)
	return Server{
		ID:      strconv.Itoa(droplet.ID),
		Name:    droplet.Name,
		Created: created,
		IPv4:    v4,
		IPv6:    v6,
	}
}

func mapGodoErr(err error) error {
	if err == nil {
		return nil
	}
	var gerr *godo.ErrorResponse
	if errors.As(err, &gerr) {
		switch gerr.Response.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized
		case http.StatusNotFound:
			return ErrServerNotFound
		default:
			return &InvalidResponseError{Body: gerr.Message}
		}
	}
	return &NetworkError{Err: err}
}
