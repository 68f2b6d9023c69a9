// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package operation

import (
	"github.com/pkg/errors"

	"github.com/bitmark-inc/witnessd/fault"
)

// PriceParam - how an application is charged for
type PriceParam uint8

// the possible pricing models
const (
	PricePermanent PriceParam = iota
	PriceTime
	PriceNone
	priceLimit
)

// IsValid - one of the defined models
func (p PriceParam) IsValid() bool {
	return p < priceLimit
}

// ApplicationCreate - register a named application
type ApplicationCreate struct {
	Author     string     `json:"author"`
	Name       string     `json:"name"`
	URL        string     `json:"url"`
	Metadata   string     `json:"metadata"`
	PriceParam PriceParam `json:"price_param"`
}

func (op *ApplicationCreate) Tag() TagType { return ApplicationCreateTag }

func (op *ApplicationCreate) Validate() error {
	if err := validateName("author", op.Author); nil != err {
		return err
	}
	if err := validateApplicationName(op.Name); nil != err {
		return err
	}
	if err := validateURL("url", op.URL, false); nil != err {
		return err
	}
	if !op.PriceParam.IsValid() {
		return errors.Wrap(fault.ErrInvalidOperation, "price_param")
	}
	return validateJSON("metadata", op.Metadata)
}

func (op *ApplicationCreate) required(r *Required) {
	r.Active = append(r.Active, op.Author)
}

// ApplicationUpdate - change an application, optionally handing it
// to a new author
type ApplicationUpdate struct {
	Author     string      `json:"author"`
	Name       string      `json:"name"`
	NewAuthor  string      `json:"new_author,omitempty"`
	PriceParam *PriceParam `json:"price_param,omitempty"`
	URL        string      `json:"url"`
	Metadata   string      `json:"metadata"`
}

func (op *ApplicationUpdate) Tag() TagType { return ApplicationUpdateTag }

func (op *ApplicationUpdate) Validate() error {
	if err := validateName("author", op.Author); nil != err {
		return err
	}
	if err := validateApplicationName(op.Name); nil != err {
		return err
	}
	if err := validateOptionalName("new_author", op.NewAuthor); nil != err {
		return err
	}
	if nil != op.PriceParam && !op.PriceParam.IsValid() {
		return errors.Wrap(fault.ErrInvalidOperation, "price_param")
	}
	if err := validateURL("url", op.URL, false); nil != err {
		return err
	}
	return validateJSON("metadata", op.Metadata)
}

func (op *ApplicationUpdate) required(r *Required) {
	r.Active = append(r.Active, op.Author)
}

// ApplicationDelete - remove an application and all its buyings
type ApplicationDelete struct {
	Author string `json:"author"`
	Name   string `json:"name"`
}

func (op *ApplicationDelete) Tag() TagType { return ApplicationDeleteTag }

func (op *ApplicationDelete) Validate() error {
	if err := validateName("author", op.Author); nil != err {
		return err
	}
	return validateApplicationName(op.Name)
}

func (op *ApplicationDelete) required(r *Required) {
	r.Active = append(r.Active, op.Author)
}

// BuyApplication - record that an account bought an application
type BuyApplication struct {
	Buyer string `json:"buyer"`
	AppID uint64 `json:"app_id"`
}

func (op *BuyApplication) Tag() TagType { return BuyApplicationTag }

func (op *BuyApplication) Validate() error {
	return validateName("buyer", op.Buyer)
}

func (op *BuyApplication) required(r *Required) {
	r.Active = append(r.Active, op.Buyer)
}

// CancelApplicationBuying - the application author removes a buying
type CancelApplicationBuying struct {
	AppOwner string `json:"app_owner"`
	Buyer    string `json:"buyer"`
	AppID    uint64 `json:"app_id"`
}

func (op *CancelApplicationBuying) Tag() TagType { return CancelApplicationBuyingTag }

func (op *CancelApplicationBuying) Validate() error {
	if err := validateName("app_owner", op.AppOwner); nil != err {
		return err
	}
	return validateName("buyer", op.Buyer)
}

func (op *CancelApplicationBuying) required(r *Required) {
	r.Active = append(r.Active, op.AppOwner)
}

func validateApplicationName(name string) error {
	if "" == name || len(name) > maxApplicationNameLength {
		return errors.Wrapf(fault.ErrInvalidOperation, "name: %q", name)
	}
	return nil
}
