// Copyright 2026 sensorlog. All rights reserved.
// Use of this source code is governed by an MIT-style license
// that can be found in the LICENSE file.

/*
Package dht-sheets logs temperature and humidity readings from a DHT11/DHT22 sensor to a Google Sheets worksheet.

dht-sheets is intended to be left running on a Raspberry Pi (or from a systemd unit). It samples the sensor, appends
each valid reading as a (timestamp, temperature, humidity) row to the first worksheet of the configured spreadsheet and
logs in again whenever an append fails.

dht-sheets supports the following commands:

  - run, to log sensor readings to the spreadsheet (the default when no command is given)
  - authorise, to authorise application access to Google Sheets
  - check, to verify the credentials and spreadsheet name
  - get, to download the logged readings as a TSV file
  - put, to append the readings in a TSV file to the spreadsheet
*/
package sheets
