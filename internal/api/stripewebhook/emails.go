package stripewebhook

import (
	"fmt"
	"time"
)

// Email bodies for every notification the webhook processor sends. Plain
// fmt templating keeps the copy greppable next to the event handlers.

func money(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

func dateUS(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("1/2/2006")
}

func lifetimePurchaseAdminEmail(customerEmail, planID string, amountTotal int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2962FF;">New Lifetime Purchase!</h2>
  <div style="background: #e8f5e9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Plan:</strong> %s</p>
    <p><strong>Amount:</strong> %s</p>
  </div>
  <div style="background: #fff3cd; padding: 15px; border-radius: 8px; border-left: 4px solid #ffc107;">
    <strong>⚠️ Action Required:</strong> Add PERMANENT access to the indicator on TradingView for this user.
  </div>
</div>`, customerEmail, planID, money(amountTotal))
}

func lifetimeWelcomeEmail(appURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2962FF;">Congratulations! 🎉</h2>
  <p>You have acquired <strong>lifetime access</strong> to Wyckoff Pro.</p>
  <div style="background: #e8f5e9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">What your Lifetime access includes:</h3>
    <ul>
      <li>✓ Wyckoff Structure Indicator</li>
      <li>✓ VSA Tom Williams Indicator</li>
      <li>✓ All future updates</li>
      <li>✓ Priority support</li>
      <li>✓ No additional payments, ever</li>
    </ul>
  </div>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px;">
    <h3 style="margin-top: 0;">Next steps:</h3>
    <ol>
      <li>Go to your <a href="%s/dashboard">Dashboard</a></li>
      <li>Configure your TradingView username</li>
      <li>We will grant you access to the indicator within a few hours</li>
    </ol>
  </div>
  <p style="margin-top: 20px;">If you have questions, reply to this email.</p>
</div>`, appURL)
}

func newSubscriptionAdminEmail(customerEmail, status string, periodStart, periodEnd int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2962FF;">New Subscription!</h2>
  <div style="background: #f5f5f5; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Status:</strong> %s</p>
    <p><strong>Start:</strong> %s</p>
    <p><strong>Next billing:</strong> %s</p>
  </div>
  <div style="background: #fff3cd; padding: 15px; border-radius: 8px; border-left: 4px solid #ffc107;">
    <strong>⚠️ Action Required:</strong> Add access to the indicator on TradingView for this user.
  </div>
</div>`, customerEmail, status, dateUS(periodStart), dateUS(periodEnd))
}

func subscriptionWelcomeEmail(appURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2962FF;">Your subscription is active! 🎉</h2>
  <p>You now have full access to the Wyckoff Pro indicator.</p>
  <div style="background: #e8f5e9; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">Next steps:</h3>
    <ol>
      <li>Go to your <a href="%s/dashboard">Dashboard</a></li>
      <li>Configure your TradingView username</li>
      <li>We will grant you access to the indicator within a few hours</li>
    </ol>
  </div>
  <p>If you have questions, reply to this email.</p>
</div>`, appURL)
}

func cancellationScheduledAdminEmail(customerEmail string, periodEnd int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f44336;">Scheduled Cancellation</h2>
  <div style="background: #ffebee; padding: 20px; border-radius: 8px;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Cancels on:</strong> %s</p>
  </div>
  <p>Access will be automatically disabled after this date.</p>
</div>`, customerEmail, dateUS(periodEnd))
}

func cancellationScheduledEmail(appURL string, periodEnd int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>We're sorry to see you go</h2>
  <p>Your subscription will be cancelled on <strong>%s</strong>.</p>
  <p>Until then, you will continue to have full access to the indicator.</p>
  <div style="background: #e3f2fd; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <p>Changed your mind? You can reactivate your subscription from your <a href="%s/dashboard">Dashboard</a>.</p>
  </div>
</div>`, dateUS(periodEnd), appURL)
}

func accessRevocationAdminEmail(customerEmail, subscriptionID string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f44336;">⚠️ Subscription Cancelled</h2>
  <div style="background: #ffebee; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Subscription ID:</strong> %s</p>
  </div>
  <div style="background: #f44336; color: white; padding: 20px; border-radius: 8px;">
    <h3 style="margin-top: 0;">🚨 Action Required:</h3>
    <ol>
      <li>Go to TradingView</li>
      <li>Remove script access for: <strong>%s</strong></li>
      <li>Confirm removal</li>
    </ol>
  </div>
</div>`, customerEmail, subscriptionID, customerEmail)
}

func accessEndedEmail(appURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Thank you for being part of Wyckoff Pro</h2>
  <p>Your subscription has ended and indicator access has been disabled.</p>
  <div style="background: #f5f5f5; padding: 15px; border-radius: 8px; margin: 20px 0;">
    <p>If you wish to return, we'll be here. You can reactivate your subscription at any time.</p>
    <a href="%s/#pricing" style="display: inline-block; background: #2962FF; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; margin-top: 10px;">View Plans</a>
  </div>
</div>`, appURL)
}

func paymentFailedAdminEmail(customerEmail string, amountDue int64, attempts int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f44336;">Payment Failed</h2>
  <div style="background: #ffebee; padding: 20px; border-radius: 8px;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Amount:</strong> %s</p>
    <p><strong>Attempts:</strong> %d</p>
  </div>
</div>`, customerEmail, money(amountDue), attempts)
}

func paymentFailedEmail(appURL string) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f44336;">We couldn't process your payment</h2>
  <p>There was a problem charging your Wyckoff Pro subscription.</p>
  <div style="background: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>Please update your payment method to maintain access to the indicator.</p>
    <a href="%s/billing" style="display: inline-block; background: #2962FF; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none; margin-top: 10px;">Update payment method</a>
  </div>
</div>`, appURL)
}

func renewalAdminEmail(customerEmail string, amountPaid int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4caf50;">Successful Renewal</h2>
  <div style="background: #e8f5e9; padding: 20px; border-radius: 8px;">
    <p><strong>Customer:</strong> %s</p>
    <p><strong>Amount:</strong> %s</p>
  </div>
</div>`, customerEmail, money(amountPaid))
}

func renewalEmail(amountPaid int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #4caf50;">Your subscription has been renewed ✓</h2>
  <p>Payment of <strong>%s</strong> processed successfully.</p>
  <p>Thank you for trusting Wyckoff Pro!</p>
</div>`, money(amountPaid))
}

func upcomingRenewalEmail(appURL string, amountDue, dueDate int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your subscription will renew soon</h2>
  <div style="background: #e3f2fd; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p>We will charge you <strong>%s</strong> on <strong>%s</strong>.</p>
  </div>
  <p>If you need to update your payment method or cancel, you can do so from your <a href="%s/dashboard">Dashboard</a>.</p>
</div>`, money(amountDue), dateUS(dueDate), appURL)
}

func trialEndingEmail(appURL string, trialEnd int64) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Your trial period ends on %s</h2>
  <p>Make sure you have a valid payment method to continue using Wyckoff Pro.</p>
  <div style="background: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <a href="%s/billing" style="display: inline-block; background: #2962FF; color: white; padding: 12px 24px; border-radius: 8px; text-decoration: none;">Verify payment method</a>
  </div>
</div>`, dateUS(trialEnd), appURL)
}

func trialEndingAdminEmail(customerEmail string, trialEnd int64) string {
	return fmt.Sprintf(`
<p><strong>Customer:</strong> %s</p>
<p><strong>Ends:</strong> %s</p>`, customerEmail, dateUS(trialEnd))
}
